package tree

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/ohler55/ojg/oj"
)

//go:embed resources/cooking_verbs.json
var defaultVerbsJSON []byte

// UnknownCategory is the category reported for verbs missing from the table.
// The cost model treats it as "no category": two unknown actions never get
// the cheap-update discount.
const UnknownCategory = "None"

// VerbEntry groups a cooking verb into its semantic categories. A verb may
// belong to several categories at each level.
type VerbEntry struct {
	DirectCategory  []string `json:"direct_category"`
	GeneralCategory []string `json:"general_category"`
	CategoryStr     string   `json:"category_str"`
}

// VerbTable maps cooking verbs to their categories. It is a fixed static
// resource; a default table is embedded in the binary.
type VerbTable map[string]VerbEntry

// DefaultVerbTable returns the embedded verb table.
func DefaultVerbTable() VerbTable {
	vt, err := parseVerbTable(defaultVerbsJSON)
	if err != nil {
		// The embedded resource is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded verb table: %v", err))
	}
	return vt
}

// LoadVerbTable reads a verb table from a JSON file with the same shape as
// the embedded resource.
func LoadVerbTable(path string) (VerbTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read verb table: %w", err)
	}
	vt, err := parseVerbTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse verb table %s: %w", path, err)
	}
	return vt, nil
}

func parseVerbTable(data []byte) (VerbTable, error) {
	var vt VerbTable
	if err := oj.Unmarshal(data, &vt); err != nil {
		return nil, err
	}
	return vt, nil
}

// Categories resolves an action label to its "/"-joined direct and general
// category strings. Digits (label disambiguation suffixes) are stripped
// before lookup; unknown verbs map to (UnknownCategory, UnknownCategory).
func (vt VerbTable) Categories(label string) (direct, general string) {
	entry, ok := vt[StripDigits(label)]
	if !ok {
		return UnknownCategory, UnknownCategory
	}
	return joinOrUnknown(entry.DirectCategory), joinOrUnknown(entry.GeneralCategory)
}

// Category returns the display category for an action label, for rendering.
func (vt VerbTable) Category(label string) string {
	entry, ok := vt[StripDigits(label)]
	if !ok || entry.CategoryStr == "" {
		return UnknownCategory
	}
	return entry.CategoryStr
}

func joinOrUnknown(categories []string) string {
	if len(categories) == 0 {
		return UnknownCategory
	}
	return strings.Join(categories, "/")
}
