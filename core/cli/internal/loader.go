package internal

import (
	"fmt"
	"os"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/parser"
)

// Overrides are command-line values that win over the config file.
type Overrides struct {
	Database string
	Catalog  string
}

// LoadConfig reads and parses a config file. An empty path yields the
// default configuration.
func LoadConfig(filePath string) (*config.Config, error) {
	if filePath == "" {
		return config.Default(), nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return LoadConfigFromBytes(content)
}

// LoadConfigFromBytes parses YAML config content and substitutes environment
// placeholders.
func LoadConfigFromBytes(content []byte) (*config.Config, error) {
	cfg, err := parser.ParseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if err := parser.SubstituteEnvVarsInConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies overrides and environment fallbacks, then validates.
func Finalize(cfg *config.Config, overrides Overrides) error {
	if overrides.Database != "" {
		cfg.Database.ConnectionString = overrides.Database
		// An explicit URL picks its own driver.
		cfg.Database.Connector = ""
	}
	cfg.Database.ConnectionString = config.ResolveConnectionString(cfg.Database.ConnectionString)

	if overrides.Catalog != "" {
		cfg.Catalog = overrides.Catalog
	}

	return parser.Validate(cfg)
}
