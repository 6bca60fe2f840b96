package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facet",
	Short: "Facet: filtered-view JSON serialization",
	Long: `Facet renders object graphs to JSON with path-scoped include/exclude
rules keyed by type. The subcommands help debug pattern matching, validate
profile files, and exercise the render pipeline on raw JSON.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
