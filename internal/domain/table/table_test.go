package table_test

import (
	"errors"
	"testing"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"First", "Last", "Phone"},
		table.NewRow("John", "Doe", "555"),
		table.Row{Cells: []table.Cell{table.Text("Ann"), table.Null}},
		table.MalformedRow(errors.New("bad quote")),
	)

	cell, err := tbl.Lookup(0, "Phone")
	if err != nil || cell.String() != "555" {
		t.Fatalf("unexpected cell %+v, err %v", cell, err)
	}

	for _, column := range []string{"Last", "Phone", "Unknown", ""} {
		cell, err := tbl.Lookup(1, column)
		if err != nil {
			t.Fatalf("expected no error for %q, got %v", column, err)
		}
		if cell.Valid || cell.String() != "" {
			t.Fatalf("expected null cell for %q, got %+v", column, cell)
		}
	}

	_, err = tbl.Lookup(2, "First")
	if !errors.Is(err, table.ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow, got %v", err)
	}
}

func TestWithLeadingColumn(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"First", "Last"},
		table.NewRow("John", "Doe"),
		table.Row{Cells: []table.Cell{table.Text("Ann")}},
	)

	out, err := tbl.WithLeadingColumn("Unique_ID", []table.Cell{table.Text("JD-74319"), table.Text("ERROR")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(out.Columns) != 3 || out.Columns[0] != "Unique_ID" || out.Columns[1] != "First" {
		t.Fatalf("unexpected columns: %v", out.Columns)
	}
	if got := out.Values(0); got[0] != "JD-74319" || got[1] != "John" || got[2] != "Doe" {
		t.Fatalf("unexpected row 0: %v", got)
	}
	if got := out.Values(1); got[0] != "ERROR" || got[1] != "Ann" || got[2] != "" {
		t.Fatalf("unexpected row 1: %v", got)
	}
	if len(tbl.Columns) != 2 {
		t.Fatalf("expected source table to be unchanged, got %v", tbl.Columns)
	}
}

func TestWithLeadingColumnRejectsLengthMismatch(t *testing.T) {
	t.Parallel()

	tbl := table.New([]string{"First"}, table.NewRow("John"))
	if _, err := tbl.WithLeadingColumn("Unique_ID", nil); err == nil {
		t.Fatal("expected error")
	}
}
