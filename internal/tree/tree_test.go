package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// smallTree builds a valid three-node recipe: bake(flour, sugar).
func smallTree() api.Tree {
	return api.Tree{
		"bake": {
			Label: "bake", Type: api.Action, Abstraction: "Heating with dry heat",
			Root: true, Children: []string{"flour", "sugar"},
		},
		"flour": {
			Label: "flour", Type: api.Ingredient, Abstraction: "grain",
			Parent: "bake",
		},
		"sugar": {
			Label: "sugar", Type: api.Ingredient, Abstraction: "sweetener",
			Parent: "bake",
		},
	}
}

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	require.NoError(t, Validate(smallTree()))
}

func TestValidateRejectsEmptyTree(t *testing.T) {
	err := Validate(api.Tree{})
	require.ErrorIs(t, err, ErrInvalidTree)
}

func TestValidateRejectsRootFlagDisagreement(t *testing.T) {
	tr := smallTree()
	// A node with a parent must not be flagged as root.
	tr["flour"].Root = true
	require.ErrorIs(t, Validate(tr), ErrInvalidTree)
}

func TestValidateRejectsMissingBacklink(t *testing.T) {
	tr := smallTree()
	tr["bake"].Children = []string{"flour"} // sugar still points at bake
	require.ErrorIs(t, Validate(tr), ErrInvalidTree)
}

func TestValidateRejectsMultipleRoots(t *testing.T) {
	tr := smallTree()
	tr["island"] = &api.Node{Label: "island", Type: api.Ingredient, Root: true}
	require.ErrorIs(t, Validate(tr), ErrInvalidTree)
}

func TestValidateRejectsParentChildCycle(t *testing.T) {
	tr := api.Tree{
		"a": {Label: "a", Type: api.Action, Root: true, Children: []string{"b"}},
		"b": {Label: "b", Type: api.Action, Parent: "a", Children: []string{"c"}},
		"c": {Label: "c", Type: api.Action, Parent: "b", Children: []string{"b"}},
	}
	require.ErrorIs(t, Validate(tr), ErrInvalidTree)
}

func TestSortChildrenOrdersByLabel(t *testing.T) {
	tr := smallTree()
	tr["bake"].Children = []string{"sugar", "flour"}
	SortChildren(tr, "bake")
	assert.Equal(t, []string{"flour", "sugar"}, tr["bake"].Children)
}

func TestRemoveNodeReparentsChildren(t *testing.T) {
	tr := api.Tree{
		"serve": {Label: "serve", Type: api.Action, Root: true, Children: []string{"bake"}},
		"bake":  {Label: "bake", Type: api.Action, Parent: "serve", Children: []string{"flour"}},
		"flour": {Label: "flour", Type: api.Ingredient, Parent: "bake"},
	}
	RemoveNode(tr, "bake")

	require.NotContains(t, tr, "bake")
	assert.Equal(t, "serve", tr["flour"].Parent)
	assert.Equal(t, []string{"flour"}, tr["serve"].Children)
	require.NoError(t, Validate(tr))
}

func TestRemoveNodeOfRootPromotesChild(t *testing.T) {
	tr := api.Tree{
		"bake":  {Label: "bake", Type: api.Action, Root: true, Children: []string{"flour"}},
		"flour": {Label: "flour", Type: api.Ingredient, Parent: "bake"},
	}
	RemoveNode(tr, "bake")

	assert.True(t, tr["flour"].Root)
	assert.Empty(t, tr["flour"].Parent)
}

func TestUpdateChildrenDeduplicatesAndSorts(t *testing.T) {
	tr := smallTree()
	tr["water"] = &api.Node{Label: "water", Type: api.Ingredient, Parent: "bake"}
	UpdateChildren(tr, "bake", []string{"sugar"}, []string{"water", "flour"})
	assert.Equal(t, []string{"flour", "water"}, tr["bake"].Children)
}

func TestStripDigits(t *testing.T) {
	assert.Equal(t, "flour", StripDigits("flour2"))
	assert.Equal(t, "white_sugar_a", StripDigits("white_sugar1_a"))
	assert.Equal(t, "mix", StripDigits("mix"))
}

func TestFormattedLabel(t *testing.T) {
	verbs := DefaultVerbTable()
	tr := smallTree()

	assert.Equal(t, "flour_ingredient_grain", FormattedLabel(tr, "flour", verbs))

	got := FormattedLabel(tr, "bake", verbs)
	assert.Equal(t, "bake_action_Heating with dry heat_Heat treatment", got)
}

func TestFormattedLabelUnknownVerb(t *testing.T) {
	verbs := DefaultVerbTable()
	tr := api.Tree{
		"frobnicate": {Label: "frobnicate", Type: api.Action, Root: true},
	}
	assert.Equal(t, "frobnicate_action_None_None", FormattedLabel(tr, "frobnicate", verbs))
}

func TestPrepareSuffixesAndDisambiguates(t *testing.T) {
	tr := api.Tree{
		"mix":    {Label: "mix", Type: api.Action, Root: true, Children: []string{"sugar", "sugar2"}},
		"sugar":  {Label: "sugar", Type: api.Ingredient, Abstraction: "sweetener", Parent: "mix"},
		"sugar2": {Label: "sugar", Type: api.Ingredient, Abstraction: "sweetener", Parent: "mix"},
	}
	out := Prepare(tr, "a")

	// The input stays untouched.
	assert.Equal(t, "sugar", tr["sugar"].Label)

	require.Contains(t, out, "mix_a")
	require.Contains(t, out, "sugar_a")
	require.Contains(t, out, "sugar2_a")

	// Duplicate labels pick up digit suffixes in identifier order.
	assert.Equal(t, "sugar1", out["sugar_a"].Label)
	assert.Equal(t, "sugar2", out["sugar2_a"].Label)

	// Pointers follow the renaming and children stay label-sorted.
	assert.Equal(t, "mix_a", out["sugar_a"].Parent)
	assert.Equal(t, []string{"sugar_a", "sugar2_a"}, out["mix_a"].Children)
	require.NoError(t, Validate(out))
}

func TestPrepareKeepsUniqueLabels(t *testing.T) {
	out := Prepare(smallTree(), "b")
	assert.Equal(t, "flour", out["flour_b"].Label)
	assert.Equal(t, []string{"flour_b", "sugar_b"}, out["bake_b"].Children)
}
