// Package indexes loads the topical index catalogs from TOML.
//
// The built-in catalogs are embedded in the binary. A file path replaces
// them entirely; catalogs are never merged.
package indexes

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driven"
)

//go:embed catalogs.toml
var builtin []byte

// Ensure Source implements the interface.
var _ driven.IndexSource = (*Source)(nil)

// Source reads index catalogs from an embedded or on-disk TOML document.
type Source struct {
	path string
}

// NewSource creates a source. An empty path selects the built-in catalogs.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the override file, or "" for the built-in catalogs.
func (s *Source) Path() string {
	return s.path
}

// Load decodes the catalogs. Top-level tables name the language.
// Unknown fields are rejected so typos in hand-edited files surface early.
func (s *Source) Load(ctx context.Context) (map[domain.Language][]domain.IndexDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.path == "" {
		return decode(bytes.NewReader(builtin))
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open index catalogs: %w", err)
	}
	defer f.Close()

	catalogs, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return catalogs, nil
}

func decode(r io.Reader) (map[domain.Language][]domain.IndexDefinition, error) {
	var raw map[string][]domain.IndexDefinition

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode index catalogs: %v", domain.ErrInvalidInput, err)
	}

	catalogs := make(map[domain.Language][]domain.IndexDefinition, len(raw))
	for lang, defs := range raw {
		catalogs[domain.Language(lang)] = defs
	}
	return catalogs, nil
}
