package editdist

import (
	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

const (
	// InsertCost and RemoveCost are deliberately high so that the dynamic
	// program prefers a single update over an insert+remove pair whenever an
	// update is legal.
	InsertCost = 100
	RemoveCost = 100
	// Infinity forbids an operation: updates across node types or across
	// unrelated categories never win.
	Infinity = 100000
)

// Costs supplies the per-operation cost functions for Distance.
type Costs struct {
	Insert func(*Node) float64
	Remove func(*Node) float64
	Update func(a, b *Node) float64
}

// DefaultCosts returns the recipe cost model.
func DefaultCosts() Costs {
	return Costs{
		Insert: func(*Node) float64 { return InsertCost },
		Remove: func(*Node) float64 { return RemoveCost },
		Update: UpdateCost,
	}
}

// UpdateCost prices relabeling a into b. Costs depend on labels and
// categories only, never node identity:
//
//	0        identical labels (after digit stripping) and same type
//	1        actions sharing a known direct verb category
//	5        actions sharing a known general verb category, or
//	         ingredients sharing an abstraction
//	Infinity anything else (update forbidden)
func UpdateCost(a, b *Node) float64 {
	if a.Type != b.Type {
		return Infinity
	}
	if tree.StripDigits(a.Label) == tree.StripDigits(b.Label) {
		return 0
	}
	if a.Type == api.Action {
		if a.Direct == b.Direct && a.Direct != tree.UnknownCategory {
			return 1
		}
		if a.General == b.General && a.General != tree.UnknownCategory {
			return 5
		}
		return Infinity
	}
	if a.Abstraction == b.Abstraction {
		return 5
	}
	return Infinity
}
