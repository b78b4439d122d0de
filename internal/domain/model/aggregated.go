package model

// ItemScore is the derived view of one competency item for one employee.
type ItemScore struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	AtLevel    float64 `json:"at_level"`
	AboveLevel float64 `json:"above_level"`
	Total      float64 `json:"total"`
}

// CategoryResult holds the derived fields of one catalog for one employee.
type CategoryResult struct {
	Key     string      `json:"key"`
	Name    string      `json:"name"`
	Items   []ItemScore `json:"items"`
	Total   float64     `json:"total"`
	Percent float64     `json:"percent"`
	Label   string      `json:"label"`
}

// AtLevelTotal sums the at-level scores of every item.
func (c CategoryResult) AtLevelTotal() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.AtLevel
	}
	return sum
}

// AboveLevelTotal sums the above-level scores of every item.
func (c CategoryResult) AboveLevelTotal() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.AboveLevel
	}
	return sum
}

// AggregatedRecord is an employee row with derived category fields attached.
type AggregatedRecord struct {
	EmployeeRecord
	Categories []CategoryResult `json:"categories"`
}

// Category returns the derived fields for the catalog key.
func (a AggregatedRecord) Category(key string) (CategoryResult, bool) {
	for _, c := range a.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryResult{}, false
}
