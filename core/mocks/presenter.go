package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
)

// MockPresenter is a mock of interfaces.Presenter.
type MockPresenter struct {
	mock.Mock
}

func (m *MockPresenter) Present(ctx context.Context, outcome domain.ReportOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

var _ interfaces.Presenter = (*MockPresenter)(nil)
