package tabular

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrEmptyTable        = errors.New("empty file: no header row found")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Data_with_IDs"

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(name), "."))
}

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// OutputFilename is the download name for a result produced at now.
func OutputFilename(now time.Time, format Format) string {
	return fmt.Sprintf("unique_ids_%s.%s", now.Format("20060102_150405"), format)
}

func Read(format Format, r io.Reader) (*table.Table, error) {
	switch format {
	case FormatCSV:
		return ReadCSV(r)
	case FormatXLSX:
		return ReadXLSX(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func Write(format Format, w io.Writer, t *table.Table) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// buildRow turns raw cells into a row of width columns. Short rows are padded
// with null cells; rows wider than the header are malformed.
func buildRow(raw []string, width int) table.Row {
	cells := make([]table.Cell, 0, max(width, len(raw)))
	for _, value := range raw {
		if value == "" {
			cells = append(cells, table.Null)
			continue
		}
		cells = append(cells, table.Text(value))
	}
	if len(raw) > width {
		return table.MalformedRow(fmt.Errorf("row has %d columns, expected %d", len(raw), width), cells...)
	}
	for len(cells) < width {
		cells = append(cells, table.Null)
	}
	return table.Row{Cells: cells}
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}
