// Package catalog defines competency catalogs and the thresholds used to label them.
package catalog

import (
	"fmt"
	"strings"
)

// Raw score column suffixes. An item with code M1 is scored by the columns
// M1_0 (at the current job level) and M1_1 (against the next level up).
const (
	AtLevelSuffix    = "_0"
	AboveLevelSuffix = "_1"
)

// Well-known catalog keys.
const (
	KeyManagerial = "managerial"
	KeyTechnical  = "technical"
)

// Item is a named competency scored at two levels.
type Item struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// AtLevelColumn returns the raw column holding the at-level score.
func (i Item) AtLevelColumn() string { return i.Code + AtLevelSuffix }

// AboveLevelColumn returns the raw column holding the above-level score.
func (i Item) AboveLevelColumn() string { return i.Code + AboveLevelSuffix }

// Catalog is an ordered list of items belonging to one competency category.
type Catalog struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Items []Item `json:"items"`

	// MaxItemScore is the maximum a single item contributes to the percent denominator.
	MaxItemScore float64 `json:"max_item_score"`

	// ReferenceLine is drawn as a dashed ring on radar charts.
	ReferenceLine float64 `json:"reference_line"`

	// RadarMax is the minimum radial axis maximum for radar charts.
	RadarMax float64 `json:"radar_max"`

	Thresholds Thresholds `json:"thresholds"`
}

// Len returns the number of items in the catalog.
func (c Catalog) Len() int { return len(c.Items) }

// Codes returns item codes in catalog order.
func (c Catalog) Codes() []string {
	codes := make([]string, len(c.Items))
	for i, it := range c.Items {
		codes[i] = it.Code
	}
	return codes
}

// Labels returns item labels in catalog order, falling back to the code.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c.Items))
	for i, it := range c.Items {
		labels[i] = it.Label
		if labels[i] == "" {
			labels[i] = it.Code
		}
	}
	return labels
}

// Columns returns every raw score column referenced by the catalog.
func (c Catalog) Columns() []string {
	cols := make([]string, 0, 2*len(c.Items))
	for _, it := range c.Items {
		cols = append(cols, it.AtLevelColumn(), it.AboveLevelColumn())
	}
	return cols
}

// Validate reports whether the catalog can be used for percent computation.
func (c Catalog) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("%w: missing key", ErrInvalidCatalog)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCatalog, c.Key)
	}
	if c.MaxItemScore <= 0 {
		return fmt.Errorf("%w: %s: max_item_score must be positive", ErrInvalidCatalog, c.Key)
	}
	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		code := strings.TrimSpace(it.Code)
		if code == "" {
			return fmt.Errorf("%w: %s: item without code", ErrInvalidCatalog, c.Key)
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("%w: %s: %s", ErrDuplicateItem, c.Key, code)
		}
		seen[code] = struct{}{}
	}
	return c.Thresholds.Validate()
}

// Set is an ordered collection of catalogs.
type Set []Catalog

// Lookup returns the catalog registered under key.
func (s Set) Lookup(key string) (Catalog, bool) {
	for _, c := range s {
		if c.Key == key {
			return c, true
		}
	}
	return Catalog{}, false
}

// Columns returns every raw score column referenced by the set.
func (s Set) Columns() []string {
	var cols []string
	for _, c := range s {
		cols = append(cols, c.Columns()...)
	}
	return cols
}

// Validate checks every catalog and rejects duplicate keys.
func (s Set) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if err := c.Validate(); err != nil {
			return err
		}
		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("%w: duplicate catalog key %s", ErrInvalidCatalog, c.Key)
		}
		seen[c.Key] = struct{}{}
	}
	return nil
}
