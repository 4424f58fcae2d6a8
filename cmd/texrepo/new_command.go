package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"texrepo/internal/faults"
	"texrepo/internal/layout"
	"texrepo/internal/repair"
	"texrepo/internal/repolock"
)

func newNewCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold new repository content",
	}
	cmd.AddCommand(newNewPaperCommand(ctx))
	return cmd
}

func newNewPaperCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "paper <stage[/branch]> <slug>",
		Short: "Create the next-numbered paper in a stage's papers container",
		Long: "Creates <stage>/papers/NN_<slug> with an entry file, refs.bib, README.md, " +
			"and empty sections/ and build/ directories. The ordinal continues the " +
			"container's existing sequence, starting at 00.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := ctx.repoRoot()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}

			container, err := papersContainerFor(lay, args[0])
			if err != nil {
				return err
			}

			lock, err := repolock.Acquire(root)
			if err != nil {
				return err
			}
			defer lock.Release()

			paperDir, err := repair.ScaffoldPaper(filepath.Join(root, container), args[1])
			if err != nil {
				return err
			}

			rel, err := filepath.Rel(root, paperDir)
			if err != nil {
				rel = paperDir
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New paper: %s\n", filepath.ToSlash(rel))
			ctx.log().Info("paper scaffolded", "path", filepath.ToSlash(rel))
			return nil
		},
	}
}

// papersContainerFor resolves a stage[/branch] argument to the papers
// container path relative to the repository root, enforcing the layout's
// branch rules for that stage.
func papersContainerFor(lay layout.Layout, location string) (string, error) {
	location = strings.Trim(strings.ReplaceAll(location, "\\", "/"), "/")
	stage, branch, hasBranch := strings.Cut(location, "/")

	stageKnown := false
	for _, s := range lay.StageRoots() {
		if s == stage {
			stageKnown = true
			break
		}
	}
	if !stageKnown {
		return "", faults.Wrap(faults.ErrValidation, "new", "paper",
			fmt.Sprintf("%s is not a paper stage; use one of %s", stage, strings.Join(lay.StageRoots(), ", ")), nil)
	}

	branches := lay.Branches(stage)
	if len(branches) == 0 {
		if hasBranch {
			return "", faults.Wrap(faults.ErrValidation, "new", "paper",
				fmt.Sprintf("stage %s has no branches; papers go directly under %s/%s", stage, stage, layout.PapersDirName), nil)
		}
		return filepath.Join(stage, layout.PapersDirName), nil
	}

	if !hasBranch || strings.Contains(branch, "/") {
		return "", faults.Wrap(faults.ErrValidation, "new", "paper",
			fmt.Sprintf("stage %s needs a branch: one of %s", stage, strings.Join(branches, ", ")), nil)
	}
	for _, b := range branches {
		if b == branch {
			return filepath.Join(stage, branch, layout.PapersDirName), nil
		}
	}
	return "", faults.Wrap(faults.ErrValidation, "new", "paper",
		fmt.Sprintf("%s is not a branch of %s; use one of %s", branch, stage, strings.Join(branches, ", ")), nil)
}
