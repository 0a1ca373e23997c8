package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"alltagslabor/internal/config"
	"alltagslabor/internal/domain"
)

// DirSource reads datasets from files in a local directory, named as in the
// language table.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Dir returns the directory the source reads from.
func (s *DirSource) Dir() string {
	return s.dir
}

func (s *DirSource) Fetch(ctx context.Context, lang domain.Language) ([]byte, error) {
	return s.FetchFile(ctx, lang.File)
}

// FetchFile reads name from the directory. Only plain file names are
// accepted.
func (s *DirSource) FetchFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// FromConfig builds the catalog source selected by cfg.Source.
func FromConfig(cfg config.CatalogConfig) (domain.CatalogSource, error) {
	switch cfg.Source {
	case config.SourceHTTP:
		return NewHTTPSource(cfg.DataBaseURL, cfg.Timeout), nil
	case config.SourceDir:
		return NewDirSource(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.Source)
	}
}
