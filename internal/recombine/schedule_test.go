package recombine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

func TestOrderBiasesCoreFirstStructureLast(t *testing.T) {
	source := api.Ingredients{
		"lasagna sheets": {Ref: api.RefStructure},
		"tomato":         {Ref: api.RefTaste},
	}
	target := api.Ingredients{
		"lemon": {Core: true},
		"salt":  {Core: false},
	}
	ops := []TerseOp{
		{Kind: Del, ID: "lasagna_sheets_a"},
		{Kind: Add, ID: "salt_b"},
		{Kind: Update, ID: "tomato_a", To: "lemon_b"},
		{Kind: Add, ID: "lemon_b"},
		{Kind: Del, ID: "tomato_a"},
		{Kind: Update, ID: "lasagna_sheets_a", To: "noodles_b"},
	}

	s := NewScheduler(rand.New(rand.NewSource(7)))
	got := s.Order(ops, source, target)
	require.Len(t, got, len(ops))

	// Core additions and updates-to-core lead.
	assert.ElementsMatch(t, []TerseOp{
		{Kind: Update, ID: "tomato_a", To: "lemon_b"},
		{Kind: Add, ID: "lemon_b"},
	}, got[:2])

	// Structural deletions and updates-of-structure trail.
	assert.ElementsMatch(t, []TerseOp{
		{Kind: Del, ID: "lasagna_sheets_a"},
		{Kind: Update, ID: "lasagna_sheets_a", To: "noodles_b"},
	}, got[4:])
}

func TestOrderIgnoresDigitSuffixes(t *testing.T) {
	target := api.Ingredients{"white sugar": {Core: true}}
	ops := []TerseOp{
		{Kind: Add, ID: "butter_b"},
		{Kind: Add, ID: "white_sugar1_b"},
	}
	s := NewScheduler(rand.New(rand.NewSource(1)))
	got := s.Order(ops, api.Ingredients{}, target)
	// The disambiguated duplicate still counts as a core addition.
	assert.Equal(t, "white_sugar1_b", got[0].ID)
}

func TestOrderKeepsEveryOperationOnce(t *testing.T) {
	ops := []TerseOp{
		{Kind: Add, ID: "a_b"},
		{Kind: Del, ID: "b_a"},
		{Kind: Update, ID: "c_a", To: "d_b"},
		{Kind: Add, ID: "e_b"},
	}
	s := NewScheduler(rand.New(rand.NewSource(3)))
	got := s.Order(ops, api.Ingredients{}, api.Ingredients{})
	assert.ElementsMatch(t, ops, got)
}

func TestCutStaysInsideMiddleBand(t *testing.T) {
	s := NewScheduler(rand.New(rand.NewSource(42)))
	for n := 1; n <= 40; n++ {
		lo := (n + 5) / 6
		hi := 5 * n / 6
		if hi < lo {
			hi = lo
		}
		for i := 0; i < 50; i++ {
			cut := s.Cut(n)
			assert.GreaterOrEqual(t, cut, lo, "n=%d", n)
			assert.LessOrEqual(t, cut, hi, "n=%d", n)
		}
	}
}

func TestCutIsSeedDeterministic(t *testing.T) {
	a := NewScheduler(rand.New(rand.NewSource(99)))
	b := NewScheduler(rand.New(rand.NewSource(99)))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Cut(24), b.Cut(24))
	}
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "white_sugar", sanitizeName("white sugar"))
	assert.Equal(t, "eggs_large", sanitizeName("eggs (large)"))
	assert.Equal(t, "mms_flour", sanitizeName("m&m's flour"))
}
