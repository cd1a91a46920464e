package services

import (
	"context"

	"github.com/hyperterse/reportdeck/core/application/catalog"
	"github.com/hyperterse/reportdeck/core/application/driver"
	"github.com/hyperterse/reportdeck/core/application/executor"
	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
)

// ReportService implements the report API used by all transports
type ReportService struct {
	catalog  *catalog.Catalog
	executor interfaces.Executor
	cache    *executor.ResultCache
}

// NewReportService creates a new ReportService
func NewReportService(cat *catalog.Catalog, exec interfaces.Executor, cache *executor.ResultCache) *ReportService {
	return &ReportService{
		catalog:  cat,
		executor: exec,
		cache:    cache,
	}
}

// Reports returns the catalog in order
func (s *ReportService) Reports() []domain.ReportDefinition {
	return s.catalog.Entries()
}

// RunReport executes one report. An unknown index is a REPORT_NOT_FOUND error.
func (s *ReportService) RunReport(ctx context.Context, index int) (domain.ReportOutcome, error) {
	def, err := s.catalog.At(index)
	if err != nil {
		return domain.ReportOutcome{}, err
	}

	result, err := s.executor.Execute(ctx, def.Query)
	if err != nil {
		return domain.ReportOutcome{}, err
	}
	return domain.NewReportOutcome(def, result), nil
}

// RunAll executes the whole catalog in order
func (s *ReportService) RunAll(ctx context.Context) ([]domain.ReportOutcome, error) {
	return driver.Collect(ctx, s.catalog, s.executor)
}

// PurgeCache drops every cached result
func (s *ReportService) PurgeCache() int {
	n := s.cache.Len()
	s.cache.Purge()
	logging.New("service").Infof("Purged %d cached result(s)", n)
	return n
}

// ForgetReport drops the cached result of one report. Other reports with the
// same query text share that entry and are refreshed too.
// The bool reports whether a result was stored.
func (s *ReportService) ForgetReport(index int) (bool, error) {
	def, err := s.catalog.At(index)
	if err != nil {
		return false, err
	}
	forgotten := s.cache.Forget(def.Query)
	if forgotten {
		logging.New("service").Infof("Forgot cached result of report %d", def.Number())
	}
	return forgotten, nil
}

var _ interfaces.ReportService = (*ReportService)(nil)
