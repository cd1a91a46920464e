package parser

import (
	"fmt"

	"github.com/hyperterse/reportdeck/core/config"
	"github.com/hyperterse/reportdeck/core/shared/env"
)

// SubstituteEnvVarsInConfig replaces {{ env.NAME }} placeholders in every
// string field of cfg that may reasonably carry deployment values. Report
// queries are never touched: their text is the cache key.
func SubstituteEnvVarsInConfig(cfg *config.Config) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", &cfg.Name},
		{"database.connection_string", &cfg.Database.ConnectionString},
		{"catalog", &cfg.Catalog},
		{"server.port", &cfg.Server.Port},
		{"server.rate_limit.redis_url", &cfg.Server.RateLimit.RedisURL},
	}

	for _, field := range fields {
		substituted, err := env.Substitute(*field.value)
		if err != nil {
			return fmt.Errorf("configuration error: failed to substitute environment variables in %s: %w", field.name, err)
		}
		*field.value = substituted
	}

	connector, err := env.Substitute(string(cfg.Database.Connector))
	if err != nil {
		return fmt.Errorf("configuration error: failed to substitute environment variables in database.connector: %w", err)
	}
	cfg.Database.Connector = config.Connector(connector)

	for key, value := range cfg.Database.Options {
		substituted, err := env.Substitute(value)
		if err != nil {
			return fmt.Errorf("configuration error: failed to substitute environment variables in database.options.%s: %w", key, err)
		}
		cfg.Database.Options[key] = substituted
	}

	return nil
}
