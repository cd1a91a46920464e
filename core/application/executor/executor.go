package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
	"github.com/hyperterse/reportdeck/core/infrastructure/logging"
	"github.com/hyperterse/reportdeck/core/observability"
)

// FailurePrefix starts every Failure diagnostic.
const FailurePrefix = "Error executing query: "

// Executor implements the Executor interface
type Executor struct {
	provider      interfaces.ConnectionProvider
	cache         interfaces.ResultCache
	cacheFailures bool

	// The shared handle is not meant for concurrent statements.
	connMu sync.Mutex
}

// Option configures an Executor.
type Option func(*Executor)

// WithFailureCaching controls whether Failure results are memoized. The
// default is true.
func WithFailureCaching(enabled bool) Option {
	return func(e *Executor) {
		e.cacheFailures = enabled
	}
}

// NewExecutor creates a new query executor
func NewExecutor(provider interfaces.ConnectionProvider, cache interfaces.ResultCache, opts ...Option) *Executor {
	e := &Executor{
		provider:      provider,
		cache:         cache,
		cacheFailures: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// uncached carries a result out of GetOrCompute without storing it.
type uncached struct {
	result domain.QueryResult
}

func (u *uncached) Error() string {
	return u.result.Message()
}

// Execute returns the result for query, running it on a cache miss.
// Execution errors are returned as domain.Failure; only a connection failure
// is returned as an error, and it is never cached.
func (e *Executor) Execute(ctx context.Context, query string) (domain.QueryResult, error) {
	log := logging.New("executor")
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "report.execute")
	defer span.End()

	// The computed result is shared by every caller waiting on this query, so
	// one caller going away must not cancel it.
	runCtx := context.WithoutCancel(ctx)

	result, hit, err := e.cache.GetOrCompute(query, func() (domain.QueryResult, error) {
		result, err := e.run(runCtx, query)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if result.IsFailure() && !e.cacheFailures {
			return domain.QueryResult{}, &uncached{result: result}
		}
		return result, nil
	})

	var skip *uncached
	if errors.As(err, &skip) {
		result, hit, err = skip.result, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.QueryResult{}, err
	}

	durationMS := float64(time.Since(start).Microseconds()) / 1000
	span.SetAttributes(
		attribute.Bool(observability.AttrCacheHit, hit),
		attribute.String(observability.AttrResultStatus, string(result.Status())),
	)
	observability.RecordQueryExecution(ctx, string(result.Status()), hit, durationMS)

	if hit {
		log.Debugf("Cache hit: %s", Describe(result))
	} else {
		log.Debugf("Cache miss, executed in %.1fms: %s", durationMS, Describe(result))
	}
	return result, nil
}

// run executes query against the shared connection. A connection failure is
// returned as an error; anything else becomes a Failure result.
func (e *Executor) run(ctx context.Context, query string) (domain.QueryResult, error) {
	e.connMu.Lock()
	defer e.connMu.Unlock()

	conn, err := e.provider.Get(ctx)
	if err != nil {
		return domain.QueryResult{}, err
	}

	table, err := conn.Query(ctx, query)
	if err != nil {
		logging.New("executor").Warnf("Query execution failed: %v", err)
		return domain.Failure(FailurePrefix + err.Error()), nil
	}

	return domain.Success(table), nil
}

var _ interfaces.Executor = (*Executor)(nil)

// Describe returns a one-line summary of a result for logs.
func Describe(result domain.QueryResult) string {
	switch {
	case result.IsFailure():
		return "failure: " + result.Message()
	case result.IsEmpty():
		return "no rows"
	default:
		table, _ := result.Table()
		return fmt.Sprintf("%d row(s)", table.Len())
	}
}
