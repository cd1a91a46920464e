package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type metrics struct {
	queryExecutionsTotal metric.Int64Counter
	queryDuration        metric.Float64Histogram
	reportsRenderedTotal metric.Int64Counter
}

var (
	metricsOnce sync.Once
	m           metrics
)

func buildMeterProvider(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		return sdkmetric.NewMeterProvider(), nil
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	), nil
}

// Instruments bind to whichever meter provider is global at first use.
func initInstruments() {
	metricsOnce.Do(func() {
		meter := otel.Meter(instrumentationName)
		m.queryExecutionsTotal, _ = meter.Int64Counter("reportdeck.query.executions_total")
		m.queryDuration, _ = meter.Float64Histogram("reportdeck.query.execution_duration_ms")
		m.reportsRenderedTotal, _ = meter.Int64Counter("reportdeck.reports.rendered_total")
	})
}

// RecordQueryExecution counts an Execute call and its latency.
func RecordQueryExecution(ctx context.Context, status string, cacheHit bool, durationMS float64) {
	initInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrResultStatus, status),
		attribute.Bool(AttrCacheHit, cacheHit),
	)
	m.queryExecutionsTotal.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, durationMS, attrs)
}

// RecordReportRendered counts a report handed to a presenter.
func RecordReportRendered(ctx context.Context, presenter string, status string) {
	initInstruments()
	m.reportsRenderedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("presenter", presenter),
		attribute.String(AttrResultStatus, status),
	))
}
