package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/domain"
)

// ParseConfig parses YAML content into a Config. Unknown keys are rejected so
// that typos surface instead of silently falling back to defaults.
func ParseConfig(data []byte) (*config.Config, error) {
	cfg := &config.Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config file is empty")
		}
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return cfg, nil
}

// catalogFile is the on-disk shape of a report catalog.
type catalogFile struct {
	Reports []catalogEntry `yaml:"reports"`
}

type catalogEntry struct {
	Label string `yaml:"label"`
	Query string `yaml:"query"`
}

// ParseCatalog parses a YAML report list. Order is the order of the reports
// sequence and query text is kept byte for byte.
func ParseCatalog(data []byte) ([]domain.ReportDefinition, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog file is empty")
		}
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	defs := make([]domain.ReportDefinition, len(file.Reports))
	for i, entry := range file.Reports {
		defs[i] = domain.ReportDefinition{
			Index: i,
			Label: entry.Label,
			Query: entry.Query,
		}
	}
	return defs, nil
}
