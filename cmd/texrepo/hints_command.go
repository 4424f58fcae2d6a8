package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texrepo/internal/texlog"
)

func newHintsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hints <latex-log-file>",
		Short: "Diagnose a LaTeX build log",
		Long: "Hints parses a LaTeX engine log, extracts the first fatal-looking " +
			"error, and suggests fixes for the common failure shapes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read log: %w", err)
			}

			out := cmd.OutOrStdout()
			primary := texlog.ExtractPrimaryError(string(content))
			if primary.Kind == texlog.KindNone {
				fmt.Fprintln(out, "No fatal errors recognized in the log.")
				return nil
			}

			fmt.Fprintf(out, "Error: %s\n", primary.Message)
			if primary.File != "" {
				fmt.Fprintf(out, "File:  %s\n", primary.File)
			}
			if primary.Line > 0 {
				fmt.Fprintf(out, "Line:  %d\n", primary.Line)
			}
			if primary.Context != "" {
				fmt.Fprintf(out, "\nContext:\n%s\n", primary.Context)
			}

			fixes := texlog.SuggestFixes(primary)
			if len(fixes) > 0 {
				fmt.Fprintln(out, "\nSuggestions:")
				for _, fix := range fixes {
					fmt.Fprintf(out, "  - %s\n", fix)
				}
			}
			return nil
		},
	}
}
