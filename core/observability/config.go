package observability

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hyperterse/reportdeck/core/shared/env"
)

// Config controls OTLP export of traces and metrics.
type Config struct {
	Enabled           bool
	TracesEnabled     bool
	MetricsEnabled    bool
	ServiceName       string
	ServiceVersion    string
	Environment       string
	OTLPEndpoint      string
	OTLPProtocol      string
	TraceSamplingRate float64
}

const envPrefix = "REPORTDECK_OTEL_"

// ResolveConfig reads REPORTDECK_OTEL_* variables over the defaults. Export
// is off unless REPORTDECK_OTEL_ENABLED is true. String values may contain
// {{ env.NAME }} placeholders.
func ResolveConfig(serviceName string) (Config, error) {
	cfg := Config{
		TracesEnabled:     true,
		MetricsEnabled:    true,
		ServiceName:       "reportdeck",
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4317",
		OTLPProtocol:      "grpc",
		TraceSamplingRate: 1.0,
	}
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}

	for name, target := range map[string]*bool{
		"ENABLED":         &cfg.Enabled,
		"TRACES_ENABLED":  &cfg.TracesEnabled,
		"METRICS_ENABLED": &cfg.MetricsEnabled,
	} {
		if parsed, err := strconv.ParseBool(os.Getenv(envPrefix + name)); err == nil {
			*target = parsed
		}
	}

	fields := map[string]*string{
		"SERVICE_NAME":    &cfg.ServiceName,
		"SERVICE_VERSION": &cfg.ServiceVersion,
		"ENVIRONMENT":     &cfg.Environment,
		"ENDPOINT":        &cfg.OTLPEndpoint,
		"PROTOCOL":        &cfg.OTLPProtocol,
	}
	for name, target := range fields {
		if value := os.Getenv(envPrefix + name); value != "" {
			*target = value
		}
		resolved, err := env.Substitute(*target)
		if err != nil {
			return Config{}, fmt.Errorf("resolve %s%s: %w", envPrefix, name, err)
		}
		*target = resolved
	}

	if ratio, err := strconv.ParseFloat(os.Getenv(envPrefix+"TRACE_SAMPLING_RATIO"), 64); err == nil {
		cfg.TraceSamplingRate = min(max(ratio, 0), 1)
	}

	cfg.OTLPProtocol = strings.ToLower(cfg.OTLPProtocol)
	if cfg.OTLPProtocol != "grpc" {
		return Config{}, fmt.Errorf("unsupported otlp protocol %q: only grpc is supported", cfg.OTLPProtocol)
	}
	return cfg, nil
}
