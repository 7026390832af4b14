package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mohammadpnp/unique-id/internal/domain/table"
	"github.com/mohammadpnp/unique-id/internal/infrastructure/tabular"
)

// LocalSource reads and writes tables under BaseDir. Absolute paths are used as given.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.BaseDir, path)
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path := s.resolve(sourcePath)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return file, nil
}

// ReadTable opens sourcePath and parses it in the format given by its extension.
func (s *LocalSource) ReadTable(ctx context.Context, sourcePath string) (*table.Table, error) {
	format, err := tabular.FormatFromFilename(sourcePath)
	if err != nil {
		return nil, err
	}

	reader, err := s.Open(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	t, err := tabular.Read(format, reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sourcePath, err)
	}
	return t, nil
}

// WriteTable writes t to targetPath in the format given by its extension.
func (s *LocalSource) WriteTable(ctx context.Context, targetPath string, t *table.Table) (err error) {
	_ = ctx

	format, err := tabular.FormatFromFilename(targetPath)
	if err != nil {
		return err
	}

	path := s.resolve(targetPath)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", path, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file %s: %w", path, closeErr)
		}
	}()

	if err := tabular.Write(format, out, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
