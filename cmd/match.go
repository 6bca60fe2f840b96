package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/facet/internal/pattern"
)

var matchCmd = &cobra.Command{
	Use:   "match [pattern] [path]",
	Short: "Check whether a dotted path matches a view pattern",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		glob, path := args[0], args[1]
		if pattern.Matches([]string{glob}, path) {
			fmt.Printf("%q matches %q\n", path, glob)
			return nil
		}
		return fmt.Errorf("%q does not match %q", path, glob)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}
