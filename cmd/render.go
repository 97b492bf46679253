package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/render"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [tree.json]",
	Short: "Render a recipe tree as Graphviz DOT on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTree(args[0])
		if err != nil {
			return err
		}
		fmt.Println(render.DOT(t, api.Ingredients{}))
		return nil
	},
}
