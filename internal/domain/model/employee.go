// Package model contains domain models passed between layers.
package model

// EmployeeRecord is one row of the assessment dataset.
type EmployeeRecord struct {
	ID       string `json:"nip"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Region   string `json:"region"`
	Level    string `json:"level"`

	// Scores holds every numeric cell keyed by column name.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Attributes holds the remaining non-empty text cells keyed by column name.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Identifier returns the record key used by lookups.
func (r EmployeeRecord) Identifier() string { return r.ID }

// Value returns the numeric value of column, or 0 when the column is absent.
func (r EmployeeRecord) Value(column string) float64 {
	return r.Scores[column]
}

// Has reports whether column carries a numeric value.
func (r EmployeeRecord) Has(column string) bool {
	_, ok := r.Scores[column]
	return ok
}

// Attribute returns a text cell, or "" when absent.
func (r EmployeeRecord) Attribute(column string) string {
	return r.Attributes[column]
}

// Columns names the identity columns of the dataset.
type Columns struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Region     string `json:"region"`
	Level      string `json:"level"`
}

// DefaultColumns returns the column names used by the assessment export.
func DefaultColumns() Columns {
	return Columns{
		Identifier: "NIP",
		Name:       "Nama Pegawai",
		Position:   "Jabatan",
		Region:     "Nama Wilayah",
		Level:      "Level",
	}
}

// WithDefaults fills blank names from DefaultColumns.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.Identifier == "" {
		c.Identifier = d.Identifier
	}
	if c.Name == "" {
		c.Name = d.Name
	}
	if c.Position == "" {
		c.Position = d.Position
	}
	if c.Region == "" {
		c.Region = d.Region
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	return c
}

// Names returns the identity column names in a fixed order.
func (c Columns) Names() []string {
	return []string{c.Identifier, c.Name, c.Position, c.Region, c.Level}
}
