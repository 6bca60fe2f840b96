package cmd

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/oj"
	"github.com/ohler55/ojg/pretty"
	"github.com/spf13/cobra"

	"github.com/agentic-research/facet"
	"github.com/agentic-research/facet/api"
)

var renderPretty bool

var renderCmd = &cobra.Command{
	Use:   "render [input.json]",
	Short: "Run a JSON document through the render pipeline",
	Long: `Parses a JSON document and re-emits it through the traversal engine
and JSON sink. Raw JSON carries no Go types, so no match rules apply; this is
a pipeline check and canonicalizer.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		data, err := oj.ParseString(string(content))
		if err != nil {
			return fmt.Errorf("parse json %s: %w", args[0], err)
		}
		out, err := facet.Marshal(api.NewView(data))
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if renderPretty {
			val, err := oj.ParseString(string(out))
			if err != nil {
				return fmt.Errorf("reparse output: %w", err)
			}
			fmt.Println(pretty.JSON(val))
			return nil
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVarP(&renderPretty, "pretty", "p", false, "Indent the output")
	rootCmd.AddCommand(renderCmd)
}
