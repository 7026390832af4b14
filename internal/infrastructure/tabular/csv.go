package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadCSV parses a CSV document with a header row. UTF-8 and UTF-16 input
// with a BOM is decoded; input that is not valid UTF-8 is read as Latin-1.
// A quote inside an unquoted field is kept as a literal. A record that still
// fails to parse becomes a malformed row in place.
func ReadCSV(r io.Reader) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(decode(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headers = trimHeaders(headers)

	var rows []table.Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, fmt.Errorf("read csv record: %w", err)
			}
			rows = append(rows, table.MalformedRow(err))
			continue
		}
		rows = append(rows, buildRow(record, len(headers)))
	}

	return table.New(headers, rows...), nil
}

func decode(data []byte) io.Reader {
	var fallback transform.Transformer = unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.ISO8859_1.NewDecoder()
	}
	return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(fallback))
}

// WriteCSV writes the header and every row; null cells are written empty.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range t.Rows {
		if err := writer.Write(t.Values(i)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
