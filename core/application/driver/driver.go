// Package driver walks a catalog, executes each report and hands the outcome
// to a presenter.
package driver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	"github.com/hyperterse/reportdeck/core/observability"
)

// Catalog is the part of a report catalog the driver reads.
type Catalog interface {
	Entries() []domain.ReportDefinition
}

// Run executes every report in catalog order, one at a time, and passes each
// outcome to presenter. A failed report is presented like any other; only a
// connection failure or a presenter error stops the run.
func Run(ctx context.Context, catalog Catalog, executor interfaces.Executor, presenter interfaces.Presenter) error {
	log := logging.New("driver")
	entries := catalog.Entries()
	log.Debugf("Running %d report(s)", len(entries))

	for _, def := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		ctx, span := observability.StartSpan(ctx, "report.run", trace.WithAttributes(
			attribute.Int(observability.AttrReportIndex, def.Index),
			attribute.String(observability.AttrReportLabel, def.Label),
		))
		result, err := executor.Execute(ctx, def.Query)
		span.End()
		if err != nil {
			return fmt.Errorf("report %d (%s): %w", def.Number(), def.Label, err)
		}

		if result.IsFailure() {
			log.Warnf("Report %d failed: %s", def.Number(), result.Message())
		}

		if err := presenter.Present(ctx, domain.NewReportOutcome(def, result)); err != nil {
			return fmt.Errorf("present report %d: %w", def.Number(), err)
		}
	}

	log.Debugf("Finished %d report(s)", len(entries))
	return nil
}

// Collector is a presenter that keeps every outcome in memory.
type Collector struct {
	Outcomes []domain.ReportOutcome
}

// Present appends outcome.
func (c *Collector) Present(_ context.Context, outcome domain.ReportOutcome) error {
	c.Outcomes = append(c.Outcomes, outcome)
	return nil
}

// Collect runs the catalog and returns the outcomes in order. On a connection
// failure the outcomes gathered so far are returned with the error.
func Collect(ctx context.Context, catalog Catalog, executor interfaces.Executor) ([]domain.ReportOutcome, error) {
	collector := &Collector{}
	err := Run(ctx, catalog, executor, collector)
	return collector.Outcomes, err
}

var _ interfaces.Presenter = (*Collector)(nil)
