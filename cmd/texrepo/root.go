package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var repoFlag string

	ctx := newCommandContext(&configFlag, &repoFlag)

	rootCmd := &cobra.Command{
		Use:           "texrepo",
		Short:         "Structural validator and spine generator for LaTeX document repositories",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository root (default: discovered from the working directory)")

	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newGuardCommand(ctx))
	rootCmd.AddCommand(newFixCommand(ctx))
	rootCmd.AddCommand(newNewCommand(ctx))
	rootCmd.AddCommand(newBuildCommand(ctx))
	rootCmd.AddCommand(newHintsCommand())
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
