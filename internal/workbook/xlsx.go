package workbook

import (
	"fmt"
	"io"
	"os"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// OpenXLSX reads the workbook at path.
func OpenXLSX(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat workbook: %w", err)
	}
	return ReadXLSX(f, info.Size())
}

// ReadXLSX parses an XLSX document. Each sheet's first non-blank row is its
// header row; every later row becomes a data row padded to the header width.
func ReadXLSX(r io.ReaderAt, size int64) (*Workbook, error) {
	ss, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading xlsx: %w", err)
	}

	book := New()
	for _, sheet := range ss.Sheets() {
		s, err := readSheet(sheet)
		if err != nil {
			return nil, err
		}
		book.Sheets = append(book.Sheets, s)
	}
	return book, nil
}

func readSheet(sheet spreadsheet.Sheet) (*Sheet, error) {
	var grid [][]Cell
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		if rowIdx >= len(grid) {
			// sparse rows: grow to fit
			grid = append(grid, make([][]Cell, rowIdx-len(grid)+1)...)
		}

		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				return nil, fmt.Errorf("sheet %q row %d: reading cell reference: %w", sheet.Name(), rowIdx+1, err)
			}
			colIdx := int(reference.ColumnToIndex(colName))
			if colIdx >= len(grid[rowIdx]) {
				grid[rowIdx] = append(grid[rowIdx], make([]Cell, colIdx-len(grid[rowIdx])+1)...)
			}
			grid[rowIdx][colIdx] = convertCell(cell)
		}
	}

	s := &Sheet{Name: sheet.Name()}
	headerIdx := -1
	for i, row := range grid {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return s, nil
	}

	for _, c := range grid[headerIdx] {
		s.Headers = append(s.Headers, c.String())
	}
	width := len(s.Headers)
	for _, row := range grid[headerIdx+1:] {
		if len(row) < width {
			row = append(row, make([]Cell, width-len(row))...)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func convertCell(c spreadsheet.Cell) Cell {
	if c.IsEmpty() {
		return Cell{}
	}
	if c.IsNumber() {
		if f, err := c.GetValueAsNumber(); err == nil {
			return NumberCell(f)
		}
	}
	return TextCell(c.GetFormattedValue())
}

func blankRow(row []Cell) bool {
	for _, c := range row {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// WriteXLSX serializes the workbook, header row first on every sheet.
func WriteXLSX(w io.Writer, book *Workbook) error {
	ss := spreadsheet.New()
	for _, s := range book.Sheets {
		sheet := ss.AddSheet()
		sheet.SetName(s.Name)

		header := sheet.AddRow()
		for _, h := range s.Headers {
			header.AddCell().SetString(h)
		}
		for _, r := range s.Rows {
			row := sheet.AddRow()
			for _, c := range r {
				cell := row.AddCell()
				switch c.Kind {
				case Number:
					cell.SetNumber(c.Num)
				case Text:
					cell.SetString(c.Str)
				}
			}
		}
	}

	if err := ss.Validate(); err != nil {
		return fmt.Errorf("validating xlsx: %w", err)
	}
	if err := ss.Save(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
