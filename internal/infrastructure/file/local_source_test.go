package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
	infrafile "github.com/mohammadpnp/unique-id/internal/infrastructure/file"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/tabular"
)

func TestLocalSourceReadWriteTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "people.csv"), []byte("First,Last\nJohn,Doe\n"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	source := infrafile.NewLocalSource(dir)

	tbl, err := source.ReadTable(context.Background(), "people.csv")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tbl.Len() != 1 || tbl.Values(0)[1] != "Doe" {
		t.Fatalf("unexpected table: %v", tbl.Rows)
	}

	out := table.New([]string{"Unique_ID"}, table.NewRow("JD-74319"))
	if err := source.WriteTable(context.Background(), "result.xlsx", out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	back, err := source.ReadTable(context.Background(), filepath.Join(dir, "result.xlsx"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if back.Values(0)[0] != "JD-74319" {
		t.Fatalf("unexpected round trip: %v", back.Values(0))
	}
}

func TestLocalSourceUnsupportedFormat(t *testing.T) {
	t.Parallel()

	source := infrafile.NewLocalSource(t.TempDir())

	_, err := source.ReadTable(context.Background(), "people.json")
	if !errors.Is(err, tabular.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLocalSourceMissingFile(t *testing.T) {
	t.Parallel()

	source := infrafile.NewLocalSource(t.TempDir())

	_, err := source.ReadTable(context.Background(), "missing.csv")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
