package interfaces

import (
	"context"

	"github.com/hyperterse/reportdeck/core/domain"
)

// Executor runs report queries and normalizes their outcome.
type Executor interface {
	// Execute returns the cached or freshly computed result for query.
	// Per-query failures come back as domain.Failure; the error return is
	// reserved for a connection that could not be established.
	Execute(ctx context.Context, query string) (domain.QueryResult, error)
}

// ResultCache memoizes query results keyed by exact query text.
type ResultCache interface {
	// GetOrCompute returns the stored result for key, or runs compute and
	// stores its result. The bool reports a cache hit. An error from compute
	// is returned as-is and nothing is stored.
	GetOrCompute(key string, compute func() (domain.QueryResult, error)) (domain.QueryResult, bool, error)

	// Len returns the number of stored results
	Len() int

	// Purge drops every stored result
	Purge()
}

// Presenter consumes report outcomes in catalog order.
type Presenter interface {
	Present(ctx context.Context, outcome domain.ReportOutcome) error
}
