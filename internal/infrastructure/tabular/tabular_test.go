package tabular_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mohammadpnp/unique-id/internal/application/identifier"
	"github.com/mohammadpnp/unique-id/internal/domain/person"
	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/tabular"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	tbl, err := tabular.ReadCSV(strings.NewReader("\ufeff First ,Last,Phone\nJohn,Doe,555\nAnn,Lee\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(tbl.Columns) != 3 || tbl.Columns[0] != "First" {
		t.Fatalf("unexpected columns: %q", tbl.Columns)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}

	cell, err := tbl.Lookup(1, "Phone")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cell.Valid {
		t.Fatalf("expected padded null cell, got %+v", cell)
	}
}

func TestReadCSVMarksMalformedRowsInPlace(t *testing.T) {
	t.Parallel()

	input := "First,Last\nJohn,Doe\nAnn,Lee,extra\nBob,Sto\"ne\nEve,Park\n"

	tbl, err := tabular.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", tbl.Len())
	}

	for i, wantErr := range []bool{false, true, false, false} {
		_, err := tbl.Lookup(i, "First")
		if wantErr && !errors.Is(err, table.ErrMalformedRow) {
			t.Fatalf("row %d: expected ErrMalformedRow, got %v", i, err)
		}
		if !wantErr && err != nil {
			t.Fatalf("row %d: expected no error, got %v", i, err)
		}
	}

	cell, _ := tbl.Lookup(2, "Last")
	if cell.String() != `Sto"ne` {
		t.Fatalf("expected bare quote kept as a literal, got %q", cell.String())
	}
	cell, _ = tbl.Lookup(3, "Last")
	if cell.String() != "Park" {
		t.Fatalf("expected reading to continue after a wide row, got %q", cell.String())
	}
}

func TestReadCSVBareQuotesStillGetIdentifiers(t *testing.T) {
	t.Parallel()

	input := "First,Last,Notes\nJohn,Doe,height 5'10\" approx\nAnn,O\"Brien,\n"

	tbl, err := tabular.ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out, err := identifier.NewApplyBatch(identifier.BatchConfig{}).Execute(context.Background(), identifier.ApplyBatchInput{
		Table:   tbl,
		Mapping: person.FieldMapping{person.FirstName: "First", person.LastName: "Last"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := strings.Join(out.IDs(), ",")
	if got != "JD-74319,AO-41941" {
		t.Fatalf("expected JD-74319,AO-41941, got %s", got)
	}
	if out.Stats.Errors != 0 {
		t.Fatalf("expected no error rows, got %d", out.Stats.Errors)
	}
}

func TestReadCSVDecodesLatin1(t *testing.T) {
	t.Parallel()

	tbl, err := tabular.ReadCSV(bytes.NewReader([]byte("First,Last\n\xc9mile,Zola\n")))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cell, _ := tbl.Lookup(0, "First")
	if cell.String() != "Émile" {
		t.Fatalf("expected Latin-1 decoding, got %q", cell.String())
	}
}

func TestReadCSVDecodesUTF16(t *testing.T) {
	t.Parallel()

	// "A,B\nx,y\n" in UTF-16 LE with BOM.
	data := []byte{0xFF, 0xFE}
	for _, r := range "A,B\nx,y\n" {
		data = append(data, byte(r), 0)
	}

	tbl, err := tabular.ReadCSV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cell, _ := tbl.Lookup(0, "B")
	if tbl.Columns[0] != "A" || cell.String() != "y" {
		t.Fatalf("unexpected table: %v %+v", tbl.Columns, cell)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	_, err := tabular.ReadCSV(strings.NewReader(""))
	if !errors.Is(err, tabular.ErrEmptyTable) {
		t.Fatalf("expected ErrEmptyTable, got %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"Unique_ID", "First", "Note"},
		table.NewRow("JD-74319", "John", "a, b"),
		table.Row{Cells: []table.Cell{table.Text("ERROR"), table.Null}},
	)

	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, tbl); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := "Unique_ID,First,Note\nJD-74319,John,\"a, b\"\nERROR,,\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"Unique_ID", "First", "Phone"},
		table.NewRow("AS-00379", "alice", "0987"),
		table.Row{Cells: []table.Cell{table.Text("JD-74319"), table.Text("John"), table.Null}},
	)

	var buf bytes.Buffer
	if err := tabular.WriteXLSX(&buf, tbl); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, err := tabular.ReadXLSX(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Columns) != 3 || got.Columns[2] != "Phone" {
		t.Fatalf("unexpected columns: %v", got.Columns)
	}
	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if values := got.Values(0); values[0] != "AS-00379" || values[2] != "0987" {
		t.Fatalf("unexpected row 0: %v", values)
	}
	if values := got.Values(1); values[1] != "John" || values[2] != "" {
		t.Fatalf("unexpected row 1: %v", values)
	}
}

func TestFormatFromFilename(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]tabular.Format{
		"people.csv":  tabular.FormatCSV,
		"People.XLSX": tabular.FormatXLSX,
	} {
		got, err := tabular.FormatFromFilename(name)
		if err != nil || got != want {
			t.Fatalf("%s: expected %s, got %s (%v)", name, want, got, err)
		}
	}

	for _, name := range []string{"people.json", "people", "people.xls"} {
		_, err := tabular.FormatFromFilename(name)
		if !errors.Is(err, tabular.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestOutputFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 18, 9, 5, 3, 0, time.UTC)
	if got := tabular.OutputFilename(now, tabular.FormatCSV); got != "unique_ids_20261018_090503.csv" {
		t.Fatalf("unexpected filename: %s", got)
	}
	if got := tabular.OutputFilename(now, tabular.FormatXLSX); got != "unique_ids_20261018_090503.xlsx" {
		t.Fatalf("unexpected filename: %s", got)
	}
}
