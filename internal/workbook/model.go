package workbook

import (
	"fmt"
	"strings"

	"github.com/coppahp/planner/internal/domain"
)

type CellKind int

const (
	Blank CellKind = iota
	Text
	Number
)

// Cell is one spreadsheet value: text, number, or blank.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: Blank}
	}
	return Cell{Kind: Text, Str: s}
}

func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Num: f}
}

// IsBlank treats whitespace-only text as blank.
func (c Cell) IsBlank() bool {
	switch c.Kind {
	case Text:
		return strings.TrimSpace(c.Str) == ""
	case Number:
		return false
	default:
		return true
	}
}

// String renders the cell. Integral numbers print without a decimal part so
// a numeric DP No of 1 compares equal to the text "1".
func (c Cell) String() string {
	switch c.Kind {
	case Text:
		return c.Str
	case Number:
		return domain.FormatFloat(c.Num)
	default:
		return ""
	}
}

// Sheet is a rectangular table: one header row and data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]Cell
}

// Cell returns the cell at (row, col), Blank when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}

// AppendRow adds a row of mixed values: string, float64, int, nil or Cell.
func (s *Sheet) AppendRow(values ...any) {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = cellOf(v)
	}
	s.Rows = append(s.Rows, row)
}

// Workbook is an in-memory set of sheets in workbook order.
type Workbook struct {
	Sheets []*Sheet
}

// New builds an empty workbook.
func New() *Workbook {
	return &Workbook{}
}

// AddSheet appends a sheet with the given headers and returns it.
func (w *Workbook) AddSheet(name string, headers ...string) *Sheet {
	s := &Sheet{Name: name, Headers: headers}
	w.Sheets = append(w.Sheets, s)
	return s
}

func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the sheet with exactly the given name.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found", name)
}

func cellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Cell{}
	case Cell:
		return x
	case string:
		return TextCell(x)
	case float64:
		return NumberCell(x)
	case int:
		return NumberCell(float64(x))
	case domain.Number:
		if f, ok := x.Parse(); ok && domain.FormatFloat(f) == x.Key() {
			return NumberCell(f)
		}
		return TextCell(string(x))
	default:
		return TextCell(fmt.Sprint(x))
	}
}
