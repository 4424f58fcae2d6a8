package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"texrepo/internal/validate"
)

// errViolationsFound signals a failed gate without an extra error line;
// the tab-separated violations on stdout are the whole report.
var errViolationsFound = errors.New("structural violations found")

func newGuardCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "guard",
		Short: "CI gate: print violations as tab-separated lines and fail if any exist",
		Long: "Guard validates the repository and prints one CODE<TAB>PATH<TAB>MESSAGE " +
			"line per violation, sorted by code then path. A clean repository " +
			"prints nothing and exits zero.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ctx.repoRoot()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}

			violations, err := validate.New(root, lay).Repository()
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				return nil
			}

			out := cmd.OutOrStdout()
			for _, v := range violations {
				fmt.Fprintln(out, v.GuardLine())
			}
			return errViolationsFound
		},
	}
}
