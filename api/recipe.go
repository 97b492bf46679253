package api

// Recipe is one sampled recipe as produced by the upstream parsing
// pipeline: the recipe tree plus the per-ingredient annotations.
type Recipe struct {
	Tree        Tree        `json:"tree_dict"`
	Ingredients Ingredients `json:"parsed_ingredients"`
	// IsTree reports whether parsing produced a well-formed tree. Recipes
	// with IsTree false are skipped by the recombiner.
	IsTree bool `json:"is_tree"`
}
