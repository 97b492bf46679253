package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVerbTableLoads(t *testing.T) {
	vt := DefaultVerbTable()
	require.NotEmpty(t, vt)
	require.Contains(t, vt, "bake")
}

func TestCategoriesKnownVerb(t *testing.T) {
	vt := DefaultVerbTable()
	direct, general := vt.Categories("boil")
	assert.Equal(t, "Heating in liquid", direct)
	assert.Equal(t, "Heat treatment", general)
}

func TestCategoriesStripsDigitSuffix(t *testing.T) {
	vt := DefaultVerbTable()
	direct, _ := vt.Categories("mix2")
	d, _ := vt.Categories("mix")
	assert.Equal(t, d, direct)
}

func TestCategoriesUnknownVerb(t *testing.T) {
	vt := DefaultVerbTable()
	direct, general := vt.Categories("levitate")
	assert.Equal(t, UnknownCategory, direct)
	assert.Equal(t, UnknownCategory, general)
}

func TestCategoriesJoinsMultipleWithSlash(t *testing.T) {
	vt := VerbTable{
		"swirl": {DirectCategory: []string{"Mixing gently", "Decorating"}, GeneralCategory: []string{"Combination"}},
	}
	direct, general := vt.Categories("swirl")
	assert.Equal(t, "Mixing gently/Decorating", direct)
	assert.Equal(t, "Combination", general)
}

func TestCodecRoundsTrip(t *testing.T) {
	data := []byte(`{
        "bake": {"label": "bake", "type": "action", "abstr": "Heating with dry heat", "root": true, "parent": "", "children": ["flour"]},
        "flour": {"label": "flour", "type": "ingredient", "abstr": "grain", "root": false, "parent": "bake", "children": []}
    }`)
	tr, err := Decode(data)
	require.NoError(t, err)
	require.NoError(t, Validate(tr))
	assert.Equal(t, "bake", tr["flour"].Parent)

	out, err := Encode(tr)
	require.NoError(t, err)
	again, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, tr, again)
}
