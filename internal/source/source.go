// Package source loads the sampled-recipes corpus produced by the upstream
// parsing pipeline: a JSON document mapping dish names to recipes, each with
// its extracted tree and ingredient annotations.
package source

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
	"github.com/moranmiz/Cooking-Up-Creativity/internal/tree"
)

// Corpus maps dish name → recipe id → recipe.
type Corpus map[string]map[string]api.Recipe

var (
	treePath   = jp.MustParseString("$.tree_dict")
	ingrPath   = jp.MustParseString("$.parsed_ingredients")
	isTreePath = jp.MustParseString("$.is_tree")
)

// Load reads a sampled-recipes JSON file. Recipes whose tree extraction
// failed upstream are kept with IsTree false so callers can report them.
func Load(path string) (Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	return Parse(data)
}

// Parse decodes a sampled-recipes document.
func Parse(data []byte) (Corpus, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	dishes, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("recipes document: expected object at top level, got %T", doc)
	}

	corpus := make(Corpus, len(dishes))
	for dish, v := range dishes {
		recipes, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("dish %q: expected object, got %T", dish, v)
		}
		corpus[dish] = make(map[string]api.Recipe, len(recipes))
		for id, rv := range recipes {
			rec, err := parseRecipe(rv)
			if err != nil {
				return nil, fmt.Errorf("dish %q recipe %q: %w", dish, id, err)
			}
			corpus[dish][id] = rec
		}
	}
	return corpus, nil
}

func parseRecipe(v any) (api.Recipe, error) {
	var rec api.Recipe

	if r := isTreePath.Get(v); len(r) > 0 {
		b, ok := r[0].(bool)
		if !ok {
			return rec, fmt.Errorf("is_tree: expected bool, got %T", r[0])
		}
		rec.IsTree = b
	}
	if !rec.IsTree {
		return rec, nil
	}

	r := treePath.Get(v)
	if len(r) == 0 {
		return rec, fmt.Errorf("tree_dict missing")
	}
	t, err := tree.Decode([]byte(oj.JSON(r[0])))
	if err != nil {
		return rec, fmt.Errorf("tree_dict: %w", err)
	}
	rec.Tree = t

	if r := ingrPath.Get(v); len(r) > 0 {
		ingr, err := decodeIngredients(r[0])
		if err != nil {
			return rec, fmt.Errorf("parsed_ingredients: %w", err)
		}
		rec.Ingredients = ingr
	}
	return rec, nil
}

func decodeIngredients(v any) (api.Ingredients, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", v)
	}
	out := make(api.Ingredients, len(m))
	for name, iv := range m {
		fields, ok := iv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ingredient %q: expected object, got %T", name, iv)
		}
		var info api.IngredientInfo
		if ref, ok := fields["ref"].(string); ok {
			info.Ref = api.ReferenceType(ref)
		}
		if core, ok := fields["core"].(bool); ok {
			info.Core = core
		}
		if abstr, ok := fields["abstr"].(string); ok {
			info.Abstraction = abstr
		}
		out[name] = info
	}
	return out, nil
}
