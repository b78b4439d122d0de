// Package chart builds chart-ready series from aggregated records.
package chart

import (
	"math"

	"github.com/okian/competency/internal/domain/catalog"
	"github.com/okian/competency/internal/domain/model"
)

// Series colors.
const (
	ColorInner     = "blue"
	ColorOuter     = "red"
	ColorReference = "green"
)

// Series is one polygon or line of a chart.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Dashed bool      `json:"dashed,omitempty"`
	Color  string    `json:"color,omitempty"`
}

// Radar is a two-layer spider chart with a dashed reference ring.
type Radar struct {
	Key           string   `json:"key"`
	Title         string   `json:"title"`
	Axes          []string `json:"axes"`
	Inner         Series   `json:"inner"`
	Outer         Series   `json:"outer"`
	Reference     Series   `json:"reference"`
	ReferenceAxes []string `json:"reference_axes"`
	RadialMax     float64  `json:"radial_max"`
}

// BuildRadar returns the radar of one catalog for r. The inner layer is the
// at-level score and the outer layer the item total. The reference ring
// repeats the catalog reference line and is closed back to its first axis.
func BuildRadar(r model.AggregatedRecord, c catalog.Catalog) Radar {
	res, ok := r.Category(c.Key)
	n := c.Len()
	radar := Radar{
		Key:       c.Key,
		Title:     c.Name,
		Axes:      c.Labels(),
		Inner:     Series{Name: "Nilai Selevel", Values: make([]float64, n), Color: ColorInner},
		Outer:     Series{Name: "Nilai Total", Values: make([]float64, n), Color: ColorOuter},
		Reference: Series{Name: "Standar", Values: make([]float64, 0, n+1), Dashed: true, Color: ColorReference},
		RadialMax: c.RadarMax,
	}
	for i := 0; i < n; i++ {
		if ok && i < len(res.Items) {
			radar.Inner.Values[i] = res.Items[i].AtLevel
			radar.Outer.Values[i] = res.Items[i].Total
		}
		radar.RadialMax = math.Max(radar.RadialMax, radar.Outer.Values[i])
		radar.Reference.Values = append(radar.Reference.Values, c.ReferenceLine)
	}
	radar.ReferenceAxes = append([]string(nil), radar.Axes...)
	if n > 0 {
		radar.Reference.Values = append(radar.Reference.Values, c.ReferenceLine)
		radar.ReferenceAxes = append(radar.ReferenceAxes, radar.Axes[0])
	}
	return radar
}

// ItemRow is one line of an item detail table.
type ItemRow struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	AtLevel    float64 `json:"at_level"`
	AboveLevel float64 `json:"above_level"`
	Total      float64 `json:"total"`
}

// ItemTable is the per-item breakdown of one catalog with column sums.
type ItemTable struct {
	Key             string    `json:"key"`
	Title           string    `json:"title"`
	Rows            []ItemRow `json:"rows"`
	TotalAtLevel    float64   `json:"total_at_level"`
	TotalAboveLevel float64   `json:"total_above_level"`
	GrandTotal      float64   `json:"grand_total"`
	Percent         float64   `json:"percent"`
	Label           string    `json:"label"`
}

// BuildItemTable returns the item breakdown of one catalog for r.
func BuildItemTable(r model.AggregatedRecord, c catalog.Catalog) ItemTable {
	res, _ := r.Category(c.Key)
	t := ItemTable{
		Key:     c.Key,
		Title:   c.Name,
		Rows:    make([]ItemRow, 0, len(res.Items)),
		Percent: res.Percent,
		Label:   res.Label,
	}
	for _, it := range res.Items {
		t.Rows = append(t.Rows, ItemRow{
			Code:       it.Code,
			Label:      it.Label,
			AtLevel:    it.AtLevel,
			AboveLevel: it.AboveLevel,
			Total:      it.Total,
		})
		t.TotalAtLevel += it.AtLevel
		t.TotalAboveLevel += it.AboveLevel
		t.GrandTotal += it.Total
	}
	return t
}

// Point is one bar.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Bar is an ordered bar chart.
type Bar struct {
	Title  string  `json:"title"`
	XAxis  string  `json:"x_axis"`
	YAxis  string  `json:"y_axis"`
	Points []Point `json:"points"`
}
