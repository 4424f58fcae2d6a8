package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texrepo/internal/repair"
	"texrepo/internal/repolock"
	"texrepo/internal/validate"
)

func newFixCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply additive repairs for fixable violations",
		Long: "Fix validates the repository and creates the missing directories and " +
			"placeholder files. It never renames, rewrites, or deletes existing " +
			"content; violations needing judgment are reported as skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ctx.repoRoot()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}

			if !dryRun {
				lock, err := repolock.Acquire(root)
				if err != nil {
					return err
				}
				defer lock.Release()
			}

			violations, err := validate.New(root, lay).Repository()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(violations) == 0 {
				fmt.Fprintln(out, "Nothing to fix.")
				return nil
			}

			actions, err := repair.New(root, dryRun).Run(violations)
			if err != nil {
				return err
			}

			for _, a := range actions {
				fmt.Fprintf(out, "%-12s %s  %s\n", a.Kind, a.Path, a.Detail)
				if a.Kind == repair.Warning {
					ctx.log().Warn("repair failed", "path", a.Path, "detail", a.Detail)
				}
			}

			s := repair.Summarize(actions)
			if dryRun {
				fmt.Fprintf(out, "\nDry run: %d repair(s) planned, %d skipped.\n", s.Planned, s.Skipped)
			} else {
				fmt.Fprintf(out, "\n%d repair(s) applied, %d skipped, %d warning(s).\n", s.Created, s.Skipped, s.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report planned repairs without writing anything")
	return cmd
}
