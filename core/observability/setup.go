// Package observability installs OpenTelemetry providers and records the
// report engine's spans and metrics.
package observability

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// Providers are the installed trace and meter providers.
type Providers struct {
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
}

// otelErrorLogger routes SDK export errors to the log instead of stderr.
type otelErrorLogger struct {
	log logging.Logger
}

func (h otelErrorLogger) Handle(err error) {
	if err != nil {
		h.log.Warnf("Telemetry export: %v", err)
	}
}

// Setup installs global providers built from cfg. With export disabled the
// providers are local only, so spans and instruments still work.
func Setup(ctx context.Context, cfg Config) (*Providers, error) {
	traces, err := buildTraceProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metrics, err := buildMeterProvider(ctx, cfg)
	if err != nil {
		_ = traces.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(traces)
	otel.SetMeterProvider(metrics)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log := logging.New("observability")
	otel.SetErrorHandler(otelErrorLogger{log: log})
	if cfg.Enabled {
		log.Infof("Exporting telemetry to %s (service %s)", cfg.OTLPEndpoint, cfg.ServiceName)
	}

	return &Providers{traces: traces, metrics: metrics}, nil
}

// Shutdown flushes pending telemetry and stops both providers. A nil
// receiver is a no-op.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return errors.Join(p.traces.Shutdown(ctx), p.metrics.Shutdown(ctx))
}
