package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/recombine"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/render"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/source"
)

var (
	dishPairs []string
	versions  int
	reverse   bool
	workers   int
	dotDir    string
)

func init() {
	combineCmd.Flags().StringArrayVar(&dishPairs, "pair", nil, "Dish pair to combine, as 'dish one=dish two' (repeatable)")
	combineCmd.Flags().IntVar(&versions, "versions", 1, "Number of shuffled versions per recipe pair")
	combineCmd.Flags().BoolVar(&reverse, "reverse", true, "Also generate the reverse transformations")
	combineCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent combinations (0 = number of CPUs)")
	combineCmd.Flags().StringVar(&dotDir, "dot-dir", "", "Directory to write one DOT file per combination")
	rootCmd.AddCommand(combineCmd)
}

var combineCmd = &cobra.Command{
	Use:   "combine [recipes.json] [output.json]",
	Short: "Generate idea trees by combining recipes of the given dish pairs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(dishPairs) == 0 {
			return fmt.Errorf("at least one --pair is required")
		}
		log := newLogger()
		verbs, err := loadVerbs()
		if err != nil {
			return err
		}

		corpus, err := source.Load(args[0])
		if err != nil {
			return err
		}

		rec := recombine.New(recombine.Options{Seed: seed, Verbs: verbs, Logger: log})
		opts := recombine.BatchOptions{Versions: versions, Reverse: reverse, Workers: workers}

		type outEntry struct {
			Tree json.RawMessage `json:"tree_dict"`
			DOT  string          `json:"tree_dot_code"`
		}
		generated := make(map[string]map[string]outEntry)

		for _, pair := range dishPairs {
			dishA, dishB, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("malformed --pair %q, want 'dish one=dish two'", pair)
			}
			recipesA, ok := corpus[dishA]
			if !ok {
				return fmt.Errorf("dish %q not in %s", dishA, args[0])
			}
			recipesB, ok := corpus[dishB]
			if !ok {
				return fmt.Errorf("dish %q not in %s", dishB, args[0])
			}

			combos, err := rec.CombineDishes(cmd.Context(), dishA, dishB, recipesA, recipesB, opts)
			if err != nil {
				return err
			}
			log.Info("combined dishes", "a", dishA, "b", dishB, "combinations", len(combos))

			pairKey := strings.ReplaceAll(dishA, " ", "_") + "_to_" + strings.ReplaceAll(dishB, " ", "_")
			entries := make(map[string]outEntry, len(combos))
			ingr := mergedIngredients(recipesA, recipesB)
			for _, c := range combos {
				data, err := json.Marshal(c.Result.Tree)
				if err != nil {
					return fmt.Errorf("encode %s: %w", c.Key, err)
				}
				dot := render.DOT(c.Result.Tree, ingr)
				entries[c.Key] = outEntry{Tree: data, DOT: dot}
				if dotDir != "" {
					path := filepath.Join(dotDir, c.Key+".dot")
					if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
						return fmt.Errorf("write %s: %w", path, err)
					}
				}
			}
			generated[pairKey] = entries
		}

		data, err := json.MarshalIndent(generated, "", "    ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		if err := os.WriteFile(args[1], data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Info("wrote generated trees", "path", args[1])
		return nil
	},
}

// mergedIngredients unions the annotations of every recipe in both dishes;
// combined trees carry nodes from either side.
func mergedIngredients(dishes ...map[string]api.Recipe) api.Ingredients {
	var maps []api.Ingredients
	for _, recipes := range dishes {
		for _, r := range recipes {
			maps = append(maps, r.Ingredients)
		}
	}
	return render.MergeIngredients(maps...)
}
