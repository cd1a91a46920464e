// Package catalog holds the ordered, immutable list of reports to run.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/parser"
	apperrors "github.com/hyperterse/reportdeck/core/shared/errors"
)

// BuiltinSource names the embedded catalog in logs and API responses.
const BuiltinSource = "builtin"

//go:embed reports.yaml
var builtinYAML []byte

// Catalog is an ordered sequence of report definitions. It has no mutation
// API; every accessor returns copies.
type Catalog struct {
	source  string
	entries []domain.ReportDefinition
}

// New builds a catalog from defs in the given order. Indexes are reassigned
// from position.
func New(source string, defs []domain.ReportDefinition) (*Catalog, error) {
	if err := parser.ValidateCatalog(defs); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeCatalogInvalid, fmt.Sprintf("invalid catalog %s", source), err)
	}

	entries := make([]domain.ReportDefinition, len(defs))
	for i, def := range defs {
		def.Index = i
		entries[i] = def
	}
	return &Catalog{source: source, entries: entries}, nil
}

// Parse builds a catalog from YAML content.
func Parse(source string, data []byte) (*Catalog, error) {
	defs, err := parser.ParseCatalog(data)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeCatalogInvalid, fmt.Sprintf("invalid catalog %s", source), err)
	}
	return New(source, defs)
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeCatalogInvalid, fmt.Sprintf("failed to read catalog %s", path), err)
	}
	return Parse(path, data)
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	c, err := Parse(BuiltinSource, builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Resolve loads the catalog at path, or the built-in one when path is empty.
func Resolve(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}
	return Load(path)
}

// Entries returns the definitions in catalog order. Each call yields the same
// sequence in a fresh slice.
func (c *Catalog) Entries() []domain.ReportDefinition {
	out := make([]domain.ReportDefinition, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of reports.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the definition at index.
func (c *Catalog) At(index int) (domain.ReportDefinition, error) {
	if index < 0 || index >= len(c.entries) {
		return domain.ReportDefinition{}, apperrors.NewAppError(
			apperrors.ErrCodeReportNotFound,
			fmt.Sprintf("report %d not found (catalog has %d reports)", index+1, len(c.entries)),
			nil,
		)
	}
	return c.entries[index], nil
}

// Source returns where the catalog was loaded from.
func (c *Catalog) Source() string {
	return c.source
}

// DistinctQueries returns how many different query texts the catalog holds,
// which bounds the number of database round-trips a full run makes.
func (c *Catalog) DistinctQueries() int {
	seen := make(map[string]struct{}, len(c.entries))
	for _, def := range c.entries {
		seen[def.Query] = struct{}{}
	}
	return len(seen)
}
