package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/facet/profile"
)

var lintCmd = &cobra.Command{
	Use:   "lint [profiles.hcl]",
	Short: "Validate a view-profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := profile.Load(args[0])
		if err != nil {
			return err
		}
		seen := map[string]bool{}
		for _, p := range f.Profiles {
			if seen[p.Name] {
				return fmt.Errorf("profile %q defined twice", p.Name)
			}
			seen[p.Name] = true
			for _, rule := range p.Rules {
				if len(rule.Includes) == 0 && len(rule.Excludes) == 0 {
					return fmt.Errorf("profile %q: match %q has no patterns", p.Name, rule.Type)
				}
			}
			fmt.Printf("profile %q: %d match block(s)\n", p.Name, len(p.Rules))
		}
		fmt.Printf("%s: %d profile(s) ok\n", args[0], len(f.Profiles))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
