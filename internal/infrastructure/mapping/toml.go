package mapping

import (
	"fmt"
	"io"
	"os"

	domain "github.com/mohammadpnp/unique-id/internal/domain/person"
	"github.com/pelletier/go-toml/v2"
)

// file is the on-disk layout:
//
//	[columns]
//	first_name = "First Name"
//	last_name  = "Surname"
type file struct {
	Columns map[string]string `toml:"columns"`
}

func Load(path string) (domain.FieldMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return m, nil
}

func Decode(r io.Reader) (domain.FieldMapping, error) {
	var doc file
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}

	out := make(domain.FieldMapping, len(doc.Columns))
	for name, column := range doc.Columns {
		field, err := domain.ParseLogicalField(name)
		if err != nil {
			return nil, err
		}
		out[field] = column
	}
	return out, nil
}

// Save writes m to path, replacing any existing file.
func Save(path string, m domain.FieldMapping) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mapping file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close mapping file %s: %w", path, closeErr)
		}
	}()

	if err := Encode(f, m); err != nil {
		return fmt.Errorf("mapping file %s: %w", path, err)
	}
	return nil
}

// Encode writes m in the layout Decode reads.
func Encode(w io.Writer, m domain.FieldMapping) error {
	doc := file{Columns: make(map[string]string, len(m))}
	for field, column := range m {
		if column != "" {
			doc.Columns[string(field)] = column
		}
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode mapping: %w", err)
	}
	return nil
}
