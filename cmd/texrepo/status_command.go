package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"texrepo/internal/validate"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report repository health without failing",
		Long: "Status validates the repository and prints a category summary. " +
			"It always exits zero; use guard for a CI gate.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ctx.repoRoot()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}
			cfg, err := ctx.configValue()
			if err != nil {
				return err
			}

			ctx.log().Debug("validating repository", "root", root, "layout", lay.Kind().String())
			violations, err := validate.New(root, lay).Repository()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := colorizeOutput(cfg, out)

			fmt.Fprintf(out, "Repository: %s\n", root)
			fmt.Fprintf(out, "Layout:     %s\n\n", lay.Kind())

			if len(violations) == 0 {
				fmt.Fprintln(out, paint("All structural invariants hold.", ansiGreen, colorize))
				return nil
			}

			fmt.Fprintln(out, renderCategoryTable(violations))
			fmt.Fprintf(out, "\n%s\n",
				paint(fmt.Sprintf("%d violation(s) found. Run `texrepo fix --dry-run` to preview repairs.", len(violations)), ansiYellow, colorize))

			if showAll {
				fmt.Fprintln(out)
				for _, v := range violations {
					fmt.Fprintf(out, "  %s  %s  %s\n", paint(string(v.Code), ansiRed, colorize), v.Path, v.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "List every violation, not just the category summary")
	return cmd
}

func renderCategoryTable(violations []validate.Violation) string {
	counts := map[validate.Category]int{}
	for _, v := range violations {
		counts[v.Code.Category()]++
	}

	categories := make([]validate.Category, 0, len(counts))
	for cat := range counts {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	rows := make([][2]string, 0, len(categories))
	for _, cat := range categories {
		rows = append(rows, [2]string{cat.String(), strconv.Itoa(counts[cat])})
	}
	return categoryTable(rows)
}
