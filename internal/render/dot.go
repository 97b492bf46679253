// Package render serializes recipe trees to Graphviz DOT for inspection and
// for the idea-selection UI downstream.
package render

import (
	"sort"
	"strings"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// Sub-label colors.
const (
	ingrAbstrColor   = "darkorchid"
	structureColor   = "deeppink3"
	coreColor        = "dodgerblue4"
	actionAbstrColor = "springgreen4"
)

// DOT renders t as a Graphviz digraph. Edges point child→parent with
// rankdir=BT, so the root ends up at the top. Ingredient nodes are boxes
// annotated with their abstraction and, when ingr knows the ingredient,
// structure/core markers. Nodes are emitted in identifier order, so the
// output is reproducible byte for byte.
func DOT(t api.Tree, ingr api.Ingredients) string {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("\trankdir=BT ratio=auto;\n")

	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		n := t[id]
		label := tree.StripDigits(n.Label)
		if n.Type == api.Ingredient {
			b.WriteString("\t" + id + "[label=<" + label)
			b.WriteString("<br /> <font color=\"" + ingrAbstrColor + "\" point-size=\"10\">" + n.Abstraction + "</font>")
			if info, ok := lookup(ingr, n.Label); ok {
				if info.Ref == api.RefStructure {
					b.WriteString("<br /> <font color=\"" + structureColor + "\" point-size=\"10\">(structure)</font>")
				}
				if info.Core {
					b.WriteString("<br /> <font color=\"" + coreColor + "\" point-size=\"10\">(core)</font>")
				}
			}
			b.WriteString("> shape=box")
		} else {
			b.WriteString("\t" + id + " [label=<" + label)
			b.WriteString("<br /> <font color=\"" + actionAbstrColor + "\" point-size=\"10\">" + n.Abstraction + "</font>>")
		}
		b.WriteString("];\n")
	}

	for _, id := range ids {
		for _, child := range t[id].Children {
			b.WriteString("\t" + child + " -> " + id + ";\n")
		}
	}
	b.WriteString("}")
	return b.String()
}

// lookup finds the annotation for a node label: digit suffixes added during
// preparation are ignored, and underscores fall back to the spaced form the
// ingredient dictionaries use.
func lookup(ingr api.Ingredients, label string) (api.IngredientInfo, bool) {
	name := tree.StripDigits(label)
	if info, ok := ingr[name]; ok {
		return info, true
	}
	info, ok := ingr[strings.ReplaceAll(name, "_", " ")]
	return info, ok
}

// MergeIngredients unions annotation maps for rendering a combined tree;
// earlier maps win on name clashes.
func MergeIngredients(maps ...api.Ingredients) api.Ingredients {
	out := make(api.Ingredients)
	for _, m := range maps {
		for name, info := range m {
			if _, ok := out[name]; !ok {
				out[name] = info
			}
		}
	}
	return out
}
