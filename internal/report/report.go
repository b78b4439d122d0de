// Package report renders dashboard results for the terminal and for export.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/competency/internal/domain/chart"
	"github.com/okian/competency/internal/domain/stats"
	"github.com/okian/competency/internal/domain/survey"
	domaintable "github.com/okian/competency/internal/domain/table"
)

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)   //nolint:gochecknoglobals // shared styles
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)              //nolint:gochecknoglobals // shared styles
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true) //nolint:gochecknoglobals // shared styles
)

// Grid is a titled table of string cells.
type Grid struct {
	Title   string     `json:"title,omitempty"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Write renders grids to w in format. JSON output ignores the text layout
// and encodes the grids as a list.
func Write(w io.Writer, format string, grids ...Grid) error {
	switch format {
	case "", FormatText:
		for i, g := range grids {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, Text(g)); err != nil {
				return err
			}
		}
		return nil
	case FormatCSV:
		cw := csv.NewWriter(w)
		for _, g := range grids {
			if err := cw.Write(g.Headers); err != nil {
				return err
			}
			if err := cw.WriteAll(g.Rows); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(grids)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text lays g out as a bordered terminal table.
func Text(g Grid) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(g.Headers...).
		Rows(g.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	if g.Title == "" {
		return t.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(g.Title), t.String())
}

// TableGrid converts a projected table view.
func TableGrid(v domaintable.View) Grid {
	return Grid{
		Title:   fmt.Sprintf("Menampilkan %d dari %d pegawai", v.Shown, v.Total),
		Headers: v.Headers(),
		Rows:    v.Strings(),
	}
}

// SummaryGrid lists per-catalog statistics and label counts.
func SummaryGrid(summaries []stats.CategorySummary) Grid {
	g := Grid{
		Title:   "Ringkasan",
		Headers: []string{"Kategori", "N", "Rata-rata", "Min", "Maks", "Simpangan Baku", "Rata-rata (%)", "Label"},
	}
	for _, s := range summaries {
		g.Rows = append(g.Rows, []string{
			s.Name,
			strconv.Itoa(s.Total.Count),
			num(s.Total.Mean),
			num(s.Total.Min),
			num(s.Total.Max),
			num(s.Total.StdDev),
			num(s.Percent.Mean),
			labels(s.Labels),
		})
	}
	return g
}

// ItemGrid lists the item breakdown of one catalog for one employee.
func ItemGrid(t chart.ItemTable) Grid {
	g := Grid{
		Title:   t.Title,
		Headers: []string{"Kode", "Kompetensi", "Setara", "Di atas", "Total"},
	}
	for _, r := range t.Rows {
		g.Rows = append(g.Rows, []string{r.Code, r.Label, num(r.AtLevel), num(r.AboveLevel), num(r.Total)})
	}
	g.Rows = append(g.Rows,
		[]string{"", "Jumlah", num(t.TotalAtLevel), num(t.TotalAboveLevel), num(t.GrandTotal)},
		[]string{"", "Persentase", "", "", num(t.Percent) + "%"},
		[]string{"", "Kategori", "", "", t.Label},
	)
	return g
}

// CountGrid lists survey answer frequencies.
func CountGrid(column string, counts []survey.Count) Grid {
	g := Grid{Title: column, Headers: []string{"Jawaban", "Jumlah"}}
	for _, c := range counts {
		g.Rows = append(g.Rows, []string{c.Label, strconv.Itoa(c.Count)})
	}
	return g
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func labels(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.Itoa(m[k])
	}
	return strings.Join(parts, ", ")
}
