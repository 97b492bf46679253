package recombine

import (
	"math/rand"
	"strings"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// Scheduler reorders a terse script under the flavor/structure bias:
// operations bringing in the target dish's core ingredients run first,
// operations tearing down the source dish's structural ingredients run last,
// and everything in between is shuffled. The bias keeps early prefixes of
// the script flavored like the target while the source skeleton survives.
type Scheduler struct {
	rng *rand.Rand
}

func NewScheduler(rng *rand.Rand) *Scheduler {
	return &Scheduler{rng: rng}
}

// Order returns the biased shuffle of ops. source describes the ingredients
// of the tree being transformed, target those of the tree transformed into.
func (s *Scheduler) Order(ops []TerseOp, source, target api.Ingredients) []TerseOp {
	structural := ingredientIDs(source, "a", func(info api.IngredientInfo) bool {
		return info.Ref == api.RefStructure
	})
	core := ingredientIDs(target, "b", func(info api.IngredientInfo) bool {
		return info.Core
	})

	var front, middle, back []TerseOp
	for _, op := range ops {
		switch {
		case op.Kind == Add && matchesIngredient(op.ID, core):
			front = append(front, op)
		case op.Kind == Update && matchesIngredient(op.To, core):
			front = append(front, op)
		case op.Kind == Del && matchesIngredient(op.ID, structural):
			back = append(back, op)
		case op.Kind == Update && matchesIngredient(op.ID, structural):
			back = append(back, op)
		default:
			middle = append(middle, op)
		}
	}
	s.rng.Shuffle(len(middle), func(i, j int) {
		middle[i], middle[j] = middle[j], middle[i]
	})

	out := make([]TerseOp, 0, len(ops))
	out = append(out, front...)
	out = append(out, middle...)
	out = append(out, back...)
	return out
}

// Cut picks the stop index for a script of n operations, uniform in
// [ceil(n/6), floor(5n/6)]. The range skips near-empty and near-complete
// prefixes, where the result would just echo one of the inputs.
func (s *Scheduler) Cut(n int) int {
	lo := (n + 5) / 6
	hi := 5 * n / 6
	if hi < lo {
		hi = lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// ingredientIDs derives the node identifiers the ingredients of one tree
// would carry: the name stripped of everything but letters and spaces,
// spaces replaced by underscores, plus the tree suffix.
func ingredientIDs(ingr api.Ingredients, suffix string, keep func(api.IngredientInfo) bool) map[string]bool {
	ids := make(map[string]bool)
	for name, info := range ingr {
		if !keep(info) {
			continue
		}
		ids[sanitizeName(name)+"_"+suffix] = true
	}
	return ids
}

func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return b.String()
}

// matchesIngredient compares a node identifier against the derived
// ingredient identifiers, ignoring the digit suffixes that duplicate labels
// pick up during preparation.
func matchesIngredient(id string, ids map[string]bool) bool {
	return ids[tree.StripDigits(id)]
}
