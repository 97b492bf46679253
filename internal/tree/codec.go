package tree

import (
	"encoding/json"
	"fmt"

	"github.com/moranmiz/Cooking-Up-Creativity/api"
)

// Decode parses the tree exchange format: a JSON object mapping node
// identifiers to node records. The result is not validated; callers that
// feed the engine go through Validate first.
func Decode(data []byte) (api.Tree, error) {
	var t api.Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return t, nil
}

// Encode renders a tree in the exchange format, indented for readability.
func Encode(t api.Tree) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	return data, nil
}
