package editdist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree builds a node with the given children, mirroring how comparison
// trees come out of preparation (children already label-ordered).
func node(n *Node, children ...*Node) *Node {
	n.Children = children
	return n
}

func TestDistanceIdenticalTreesIsZero(t *testing.T) {
	build := func() *Node {
		return node(action("bake", "Heating with dry heat", "Heat treatment"),
			ingr("flour", "grain"),
			ingr("sugar", "sweetener"))
	}
	cost, ops := Distance(build(), build(), DefaultCosts())

	assert.EqualValues(t, 0, cost)
	require.Len(t, ops, 3)
	for _, op := range ops {
		assert.Equal(t, OpMatch, op.Type)
	}
}

func TestDistanceSingleIngredientSwap(t *testing.T) {
	// bake(flour, pecans) vs bake(flour, walnuts): pecans and walnuts share
	// the "nut" abstraction, so one cheap update beats insert+remove.
	t1 := node(action("bake", "Heating with dry heat", "Heat treatment"),
		ingr("flour", "grain"),
		ingr("pecans", "nut"))
	t2 := node(action("bake", "Heating with dry heat", "Heat treatment"),
		ingr("flour", "grain"),
		ingr("walnuts", "nut"))

	cost, ops := Distance(t1, t2, DefaultCosts())
	assert.EqualValues(t, 5, cost)

	var updates int
	for _, op := range ops {
		if op.Type == OpUpdate {
			updates++
			assert.Equal(t, "pecans", op.A.Label)
			assert.Equal(t, "walnuts", op.B.Label)
		} else {
			assert.Equal(t, OpMatch, op.Type)
		}
	}
	assert.Equal(t, 1, updates)
}

func TestDistancePureInsertion(t *testing.T) {
	t1 := node(action("mix", "Combining", "Combination"),
		ingr("flour", "grain"))
	t2 := node(action("mix", "Combining", "Combination"),
		ingr("flour", "grain"),
		ingr("milk", "dairy"))

	cost, ops := Distance(t1, t2, DefaultCosts())
	assert.EqualValues(t, InsertCost, cost)

	var inserts int
	for _, op := range ops {
		if op.Type == OpInsert {
			inserts++
			assert.Nil(t, op.A)
			assert.Equal(t, "milk", op.B.Label)
		}
	}
	assert.Equal(t, 1, inserts)
}

func TestDistancePureRemoval(t *testing.T) {
	t1 := node(action("mix", "Combining", "Combination"),
		ingr("flour", "grain"),
		ingr("milk", "dairy"))
	t2 := node(action("mix", "Combining", "Combination"),
		ingr("flour", "grain"))

	cost, ops := Distance(t1, t2, DefaultCosts())
	assert.EqualValues(t, RemoveCost, cost)

	var removes int
	for _, op := range ops {
		if op.Type == OpRemove {
			removes++
			assert.Equal(t, "milk", op.A.Label)
			assert.Nil(t, op.B)
		}
	}
	assert.Equal(t, 1, removes)
}

func TestDistanceForbiddenUpdateFallsBackToInsertRemove(t *testing.T) {
	// Unrelated abstractions forbid the update, so replacing the leaf costs
	// a full insert+remove pair.
	t1 := node(action("mix", "Combining", "Combination"),
		ingr("pecans", "nut"))
	t2 := node(action("mix", "Combining", "Combination"),
		ingr("milk", "dairy"))

	cost, _ := Distance(t1, t2, DefaultCosts())
	assert.EqualValues(t, InsertCost+RemoveCost, cost)
}

func TestDistanceOperationsCoverEveryNode(t *testing.T) {
	t1 := node(action("serve", "None", "None"),
		node(action("bake", "Heating with dry heat", "Heat treatment"),
			ingr("flour", "grain"),
			ingr("sugar", "sweetener")))
	t2 := node(action("serve", "None", "None"),
		node(action("boil", "Heating in liquid", "Heat treatment"),
			ingr("noodles", "pasta")))

	_, ops := Distance(t1, t2, DefaultCosts())

	// Every node of the first tree appears exactly once on the remove/
	// update/match side, every node of the second exactly once on the
	// insert/update/match side.
	var left, right int
	for _, op := range ops {
		if op.A != nil {
			left++
		}
		if op.B != nil {
			right++
		}
	}
	assert.Equal(t, 4, left)
	assert.Equal(t, 3, right)
}

func TestDistanceIsDeterministic(t *testing.T) {
	build1 := func() *Node {
		return node(action("mix", "Combining", "Combination"),
			ingr("butter", "fat"),
			ingr("flour", "grain"),
			ingr("sugar", "sweetener"))
	}
	build2 := func() *Node {
		return node(action("blend", "Mixing vigorously", "Combination"),
			ingr("flour", "grain"),
			ingr("honey", "sweetener"))
	}

	cost1, ops1 := Distance(build1(), build2(), DefaultCosts())
	cost2, ops2 := Distance(build1(), build2(), DefaultCosts())
	assert.Equal(t, cost1, cost2)
	require.Equal(t, len(ops1), len(ops2))
	for i := range ops1 {
		assert.Equal(t, ops1[i].Type, ops2[i].Type)
	}
}
