package driver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/reportdeck/core/application/catalog"
	"github.com/hyperterse/reportdeck/core/application/driver"
	"github.com/hyperterse/reportdeck/core/application/executor"
	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/infrastructure/connectors"
	"github.com/hyperterse/reportdeck/core/mocks"
	apperrors "github.com/hyperterse/reportdeck/core/shared/errors"
)

var threeReports = []domain.ReportDefinition{
	{Label: "Best sellers", Query: "SELECT prodid FROM customerorderitem"},
	{Label: "Broken", Query: "SELECT * FROM nope"},
	{Label: "Best sellers again", Query: "SELECT prodid FROM customerorderitem"},
}

func newCatalog(t *testing.T, defs []domain.ReportDefinition) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("test", defs)
	require.NoError(t, err)
	return c
}

func newExecutor(conn *mocks.MockConnector, openErr error) *executor.Executor {
	open, _ := mocks.CountingOpener(conn, openErr)
	return executor.NewExecutor(connectors.NewProvider(open), executor.NewResultCache())
}

func TestRun_IsolatesFailures(t *testing.T) {
	bestSellers := domain.Table{
		Columns: []string{"prodid"},
		Rows:    []domain.Row{{"prodid": "P1"}},
	}
	conn := mocks.NewMockConnector(t)
	conn.On("Query", mock.Anything, threeReports[0].Query).Return(bestSellers, nil).Once()
	conn.On("Query", mock.Anything, threeReports[1].Query).Return(domain.Table{}, errors.New("no such table: nope")).Once()

	outcomes, err := driver.Collect(context.Background(), newCatalog(t, threeReports), newExecutor(conn, nil))
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for i, outcome := range outcomes {
		assert.Equal(t, i, outcome.Index)
		assert.Equal(t, threeReports[i].Label, outcome.Label)
		assert.Equal(t, threeReports[i].Query, outcome.Query)
	}

	assert.True(t, outcomes[0].Result.IsSuccess())
	assert.True(t, outcomes[1].Result.IsFailure())
	assert.Equal(t, executor.FailurePrefix+"no such table: nope", outcomes[1].Result.Message())
	assert.True(t, outcomes[2].Result.Equal(outcomes[0].Result), "repeated query reuses the cached result")
}

func TestRun_PresentsInCatalogOrder(t *testing.T) {
	conn := mocks.NewMockConnector(t)
	conn.On("Query", mock.Anything, mock.Anything).Return(domain.Table{Columns: []string{"n"}, Rows: []domain.Row{}}, nil)

	presenter := &mocks.MockPresenter{}
	presenter.Test(t)
	var order []int
	presenter.On("Present", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order = append(order, args.Get(1).(domain.ReportOutcome).Index)
		}).
		Return(nil)

	err := driver.Run(context.Background(), newCatalog(t, threeReports), newExecutor(conn, nil), presenter)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, order)
	presenter.AssertNumberOfCalls(t, "Present", 3)
}

func TestRun_ConnectionErrorAborts(t *testing.T) {
	outcomes, err := driver.Collect(context.Background(), newCatalog(t, threeReports), newExecutor(nil, errors.New("connection refused")))

	require.Error(t, err)
	assert.True(t, apperrors.IsConnectionError(err))
	assert.Contains(t, err.Error(), "report 1 (Best sellers)")
	assert.Empty(t, outcomes)
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := mocks.NewMockConnector(t)
	outcomes, err := driver.Collect(ctx, newCatalog(t, threeReports), newExecutor(conn, nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestRun_PresenterErrorStops(t *testing.T) {
	conn := mocks.NewMockConnector(t)
	conn.On("Query", mock.Anything, threeReports[0].Query).Return(domain.Table{Columns: []string{"prodid"}, Rows: []domain.Row{}}, nil).Once()

	writeErr := errors.New("broken pipe")
	presenter := &mocks.MockPresenter{}
	presenter.Test(t)
	presenter.On("Present", mock.Anything, mock.Anything).Return(writeErr).Once()

	err := driver.Run(context.Background(), newCatalog(t, threeReports), newExecutor(conn, nil), presenter)

	assert.ErrorIs(t, err, writeErr)
	assert.Contains(t, err.Error(), "present report 1")
	presenter.AssertExpectations(t)
}
