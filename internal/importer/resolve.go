package importer

import (
	"strings"

	"github.com/coppahp/planner/internal/domain"
	"github.com/coppahp/planner/internal/workbook"
)

// Column is a header and its position in the sheet.
type Column struct {
	Header string
	Index  int
}

// Mapping is the outcome of resolving a header row: which column supplies
// each canonical field, plus the unmatched columns to carry verbatim.
type Mapping struct {
	columns     map[Field]Column
	PassThrough []Column
}

// Resolve maps headers to canonical fields using the kind's synonym table.
func Resolve(headers []string, kind domain.EntityKind) *Mapping {
	return ResolveTable(headers, TableFor(kind))
}

// ResolveTable maps each header to the first group in table that accepts it.
// The first header claiming a field wins; later headers for the same field
// are ignored. Headers no group accepts become pass-through columns. Blank
// headers are dropped.
func ResolveTable(headers []string, table Table) *Mapping {
	index := make(map[string]Field)
	for i := len(table) - 1; i >= 0; i-- {
		for _, syn := range table[i].Synonyms {
			index[headerKey(syn)] = table[i].Field
		}
	}

	m := &Mapping{columns: make(map[Field]Column)}
	for i, h := range headers {
		key := headerKey(h)
		if key == "" {
			continue
		}
		field, ok := index[key]
		if !ok {
			m.PassThrough = append(m.PassThrough, Column{Header: strings.TrimSpace(h), Index: i})
			continue
		}
		if _, taken := m.columns[field]; taken {
			continue
		}
		m.columns[field] = Column{Header: h, Index: i}
	}
	return m
}

// Has reports whether some header resolved to f.
func (m *Mapping) Has(f Field) bool {
	_, ok := m.columns[f]
	return ok
}

// Header returns the raw header text that resolved to f.
func (m *Mapping) Header(f Field) (string, bool) {
	c, ok := m.columns[f]
	return c.Header, ok
}

// Headers returns the canonical field to raw header mapping.
func (m *Mapping) Headers() map[Field]string {
	out := make(map[Field]string, len(m.columns))
	for f, c := range m.columns {
		out[f] = c.Header
	}
	return out
}

// Value returns the trimmed text of field f in row, "" when the column is
// absent or the cell blank.
func (m *Mapping) Value(row []workbook.Cell, f Field) string {
	c, ok := m.columns[f]
	if !ok || c.Index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[c.Index].String())
}

// Extras collects the non-blank pass-through values of row keyed by header.
func (m *Mapping) Extras(row []workbook.Cell) map[string]string {
	var extra map[string]string
	for _, c := range m.PassThrough {
		if c.Index >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[c.Index].String())
		if v == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		if _, dup := extra[c.Header]; !dup {
			extra[c.Header] = v
		}
	}
	return extra
}

// headerKey lowercases and collapses whitespace runs.
func headerKey(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}
