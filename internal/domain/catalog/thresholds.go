package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Default category labels.
const (
	LabelOptimal       = "Optimal"
	LabelFairlyOptimal = "Cukup Optimal"
	LabelNotOptimal    = "Kurang Optimal"
)

// Default cut points, in percent.
const (
	DefaultOptimalMin       = 85
	DefaultFairlyOptimalMin = 70
)

// Cut maps every percent at or above Min to Label.
type Cut struct {
	Min   float64 `json:"min"`
	Label string  `json:"label"`
}

// Thresholds maps a percent to a label. The highest cut whose Min is reached
// wins; percents below every cut get Fallback.
type Thresholds struct {
	Cuts     []Cut  `json:"cuts"`
	Fallback string `json:"fallback"`
}

// NewThresholds builds thresholds from a fallback label and cut points in any order.
func NewThresholds(fallback string, cuts ...Cut) Thresholds {
	cp := make([]Cut, len(cuts))
	copy(cp, cuts)
	return Thresholds{Cuts: cp, Fallback: fallback}
}

// DefaultThresholds returns the 85/70 Optimal, Cukup Optimal, Kurang Optimal scale.
func DefaultThresholds() Thresholds {
	return NewThresholds(LabelNotOptimal,
		Cut{Min: DefaultOptimalMin, Label: LabelOptimal},
		Cut{Min: DefaultFairlyOptimalMin, Label: LabelFairlyOptimal},
	)
}

// Classify returns the label for percent.
func (t Thresholds) Classify(percent float64) string {
	if math.IsNaN(percent) {
		return t.Fallback
	}
	best := -1
	for i, c := range t.Cuts {
		if percent >= c.Min && (best < 0 || c.Min > t.Cuts[best].Min) {
			best = i
		}
	}
	if best < 0 {
		return t.Fallback
	}
	return t.Cuts[best].Label
}

// Labels returns the cut labels from the highest cut down, followed by Fallback.
func (t Thresholds) Labels() []string {
	ordered := make([]Cut, len(t.Cuts))
	copy(ordered, t.Cuts)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Min > ordered[j].Min })
	labels := make([]string, 0, len(ordered)+1)
	for _, c := range ordered {
		labels = append(labels, c.Label)
	}
	return append(labels, t.Fallback)
}

// Validate rejects unlabeled cuts and repeated cut points.
func (t Thresholds) Validate() error {
	if strings.TrimSpace(t.Fallback) == "" {
		return fmt.Errorf("%w: missing fallback label", ErrInvalidThresholds)
	}
	seen := make(map[float64]struct{}, len(t.Cuts))
	for _, c := range t.Cuts {
		if strings.TrimSpace(c.Label) == "" {
			return fmt.Errorf("%w: cut %.2f has no label", ErrInvalidThresholds, c.Min)
		}
		if _, dup := seen[c.Min]; dup {
			return fmt.Errorf("%w: cut %.2f repeated", ErrInvalidThresholds, c.Min)
		}
		seen[c.Min] = struct{}{}
	}
	return nil
}
