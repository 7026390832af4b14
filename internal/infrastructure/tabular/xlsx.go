package tabular

import (
	"fmt"
	"io"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first worksheet. Its first row is the header; empty
// trailing cells come back as null cells.
func ReadXLSX(r io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	headers := trimHeaders(records[0])
	rows := make([]table.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, buildRow(record, len(headers)))
	}

	return table.New(headers, rows...), nil
}

// WriteXLSX writes t to a single worksheet named SheetName.
func WriteXLSX(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open sheet writer: %w", err)
	}

	header := make([]any, 0, len(t.Columns))
	for _, column := range t.Columns {
		header = append(header, column)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, row := range t.Rows {
		values := make([]any, len(t.Columns))
		for col := range t.Columns {
			if col < len(row.Cells) && row.Cells[col].Valid {
				values[col] = row.Cells[col].Value
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell for row %d: %w", i+1, err)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush xlsx: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
