package recombine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/editdist"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/logging"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// Options configures a Recombiner.
type Options struct {
	// Seed drives the scheduler's shuffle and cut choice. The same seed and
	// inputs reproduce the same intermediate tree.
	Seed int64
	// Verbs is the verb categorization table; nil selects the built-in one.
	Verbs tree.VerbTable
	// Logger receives progress and drop reports; nil disables logging.
	Logger *slog.Logger
}

// Result is one produced combination.
type Result struct {
	// Tree is the intermediate tree, a valid rooted tree.
	Tree api.Tree
	// Cost is the full source→target edit distance.
	Cost float64
	// Script is the concrete grounded edit script before scheduling.
	Script []ConcreteOp
	// Cut is how many scheduled operations were attempted.
	Cut int
	// Stats reports how the attempted prefix was disposed of.
	Stats ApplyStats
}

// Recombiner combines pairs of recipe trees into intermediate idea trees.
// It is safe for concurrent use as long as each call gets its own RNG via
// CombineSeeded; Combine uses the configured seed directly.
type Recombiner struct {
	verbs tree.VerbTable
	seed  int64
	log   *slog.Logger
}

func New(opts Options) *Recombiner {
	verbs := opts.Verbs
	if verbs == nil {
		verbs = tree.DefaultVerbTable()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Recombiner{verbs: verbs, seed: opts.Seed, log: log}
}

// Combine transforms src partway toward dst and returns the intermediate
// tree. srcIngr and dstIngr are the ingredient annotations of the
// respective recipes.
func (r *Recombiner) Combine(src, dst api.Tree, srcIngr, dstIngr api.Ingredients) (*Result, error) {
	return r.CombineSeeded(src, dst, srcIngr, dstIngr, r.seed)
}

// CombineSeeded is Combine with an explicit seed, for callers fanning out
// several versions of the same pair.
func (r *Recombiner) CombineSeeded(src, dst api.Tree, srcIngr, dstIngr api.Ingredients, seed int64) (*Result, error) {
	if err := tree.Validate(src); err != nil {
		return nil, fmt.Errorf("source tree: %w", err)
	}
	if err := tree.Validate(dst); err != nil {
		return nil, fmt.Errorf("target tree: %w", err)
	}

	a := tree.Prepare(src, "a")
	b := tree.Prepare(dst, "b")

	ca := BuildComparison(a, r.verbs)
	cb := BuildComparison(b, r.verbs)
	cost, ops := editdist.Distance(ca, cb, editdist.DefaultCosts())

	script := Concretize(a, b, ops, r.verbs)
	topo := BuildTopology(a, b, script)

	terse := Terse(script)
	sched := NewScheduler(rand.New(rand.NewSource(seed)))
	ordered := sched.Order(terse, srcIngr, dstIngr)
	cut := sched.Cut(len(ordered))

	r.log.Debug("applying edit prefix",
		"cost", cost, "script", len(script), "terse", len(terse), "cut", cut)

	out, stats := Apply(a, ordered, topo, cut, r.log)
	return &Result{Tree: out, Cost: cost, Script: script, Cut: cut, Stats: stats}, nil
}
