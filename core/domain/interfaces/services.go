package interfaces

import (
	"context"

	"github.com/hyperterse/reportdeck/core/domain"
)

// ReportService is the report API shared by every transport.
type ReportService interface {
	// Reports returns the catalog in order
	Reports() []domain.ReportDefinition

	// RunReport executes the report at the zero-based index
	RunReport(ctx context.Context, index int) (domain.ReportOutcome, error)

	// RunAll executes the whole catalog in order
	RunAll(ctx context.Context) ([]domain.ReportOutcome, error)

	// PurgeCache drops every cached result and returns how many were dropped
	PurgeCache() int

	// ForgetReport drops the cached result of one report and reports whether
	// there was one
	ForgetReport(index int) (bool, error)
}
