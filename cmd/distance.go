package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/recombine"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

func init() {
	rootCmd.AddCommand(distanceCmd)
}

var distanceCmd = &cobra.Command{
	Use:   "distance [tree-a.json] [tree-b.json]",
	Short: "Compute the edit distance between two recipe trees and print the concrete script",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbs, err := loadVerbs()
		if err != nil {
			return err
		}
		a, err := loadTree(args[0])
		if err != nil {
			return err
		}
		b, err := loadTree(args[1])
		if err != nil {
			return err
		}

		pa := tree.Prepare(a, "a")
		pb := tree.Prepare(b, "b")
		cost, ops := editdist.Distance(
			recombine.BuildComparison(pa, verbs),
			recombine.BuildComparison(pb, verbs),
			editdist.DefaultCosts())
		script := recombine.Concretize(pa, pb, ops, verbs)

		fmt.Printf("distance: %.0f\n", cost)
		for _, op := range script {
			fmt.Println(op)
		}
		return nil
	},
}

func loadTree(path string) (api.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree: %w", err)
	}
	t, err := tree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := tree.Validate(t); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
