package recombine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// Combination is one generated idea tree, keyed by the pair and version that
// produced it.
type Combination struct {
	Key    string
	Source string
	Target string
	Result *Result
}

// BatchOptions configures CombineDishes.
type BatchOptions struct {
	// Versions is how many differently-shuffled combinations to produce per
	// recipe pair; at least 1.
	Versions int
	// Reverse also produces the target→source transformations.
	Reverse bool
	// Workers bounds the number of concurrent combinations; 0 means
	// GOMAXPROCS.
	Workers int
}

// CombineDishes crosses every recipe of dishA with every recipe of dishB and
// produces the requested versions of each transformation, in parallel.
// Recipes that failed upstream tree extraction are skipped. Each version
// derives its own seed from the recombiner's base seed, so a batch is
// reproducible regardless of scheduling.
func (r *Recombiner) CombineDishes(ctx context.Context, dishA, dishB string, recipesA, recipesB map[string]api.Recipe, opts BatchOptions) ([]Combination, error) {
	if opts.Versions < 1 {
		opts.Versions = 1
	}

	type job struct {
		key, source, target string
		src, dst            api.Recipe
		seed                int64
	}
	var jobs []job
	seq := int64(0)
	for _, idA := range sortedKeys(recipesA) {
		for _, idB := range sortedKeys(recipesB) {
			a, b := recipesA[idA], recipesB[idB]
			if !a.IsTree || !b.IsTree {
				r.log.Debug("skipping pair without trees", "a", idA, "b", idB)
				continue
			}
			nameA := recipeKey(dishA, idA)
			nameB := recipeKey(dishB, idB)
			for v := 1; v <= opts.Versions; v++ {
				jobs = append(jobs, job{
					key:    fmt.Sprintf("%s_to_%s_v%d", nameA, nameB, v),
					source: nameA, target: nameB,
					src: a, dst: b,
					seed: r.seed + seq,
				})
				seq++
				if opts.Reverse {
					jobs = append(jobs, job{
						key:    fmt.Sprintf("%s_to_%s_v%d", nameB, nameA, v),
						source: nameB, target: nameA,
						src: b, dst: a,
						seed: r.seed + seq,
					})
					seq++
				}
			}
		}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes its own slot, so no lock is needed.
	out := make([]Combination, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.CombineSeeded(j.src.Tree, j.dst.Tree, j.src.Ingredients, j.dst.Ingredients, j.seed)
			if err != nil {
				return fmt.Errorf("combine %s: %w", j.key, err)
			}
			out[i] = Combination{Key: j.key, Source: j.source, Target: j.target, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func recipeKey(dish, recipeID string) string {
	return strings.ReplaceAll(dish, " ", "_") + "_" + recipeID
}

func sortedKeys(m map[string]api.Recipe) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
