package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"texrepo/internal/repolock"
	"texrepo/internal/scan"
	"texrepo/internal/spine"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Regenerate the book spines",
		Long: "Build scans the book subtree and rewrites the front-matter and " +
			"main-matter spines under the book build directory. Generation is " +
			"deterministic: an unchanged tree produces byte-identical spines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.requireBook(); err != nil {
				return err
			}
			root, err := ctx.repoRoot()
			if err != nil {
				return err
			}
			lay, err := ctx.layoutValue()
			if err != nil {
				return err
			}

			lock, err := repolock.Acquire(root)
			if err != nil {
				return err
			}
			defer lock.Release()

			bookRoot := filepath.Join(root, lay.BookDir())
			tree, err := scan.ScanBookTree(bookRoot)
			if err != nil {
				return err
			}

			gen := spine.NewGenerator(tree)
			out := cmd.OutOrStdout()

			for _, generate := range []func() (*spine.Document, error){gen.Frontmatter, gen.Mainmatter} {
				doc, err := generate()
				if err != nil {
					return err
				}
				for _, warning := range doc.Warnings {
					ctx.log().Warn("spine generation", "detail", warning)
				}
				path, err := spine.WriteDocument(tree.BuildDir, doc)
				if err != nil {
					return err
				}
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					rel = path
				}
				fmt.Fprintf(out, "wrote %s\n", filepath.ToSlash(rel))
			}
			return nil
		},
	}
}
