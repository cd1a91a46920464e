// Package mocks provides testify mocks of the domain interfaces.
package mocks

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/hyperterse/reportdeck/core/domain"
	"github.com/hyperterse/reportdeck/core/domain/interfaces"
)

// MockConnector is a mock of interfaces.Connector.
type MockConnector struct {
	mock.Mock
}

// NewMockConnector creates a mock that asserts its expectations when t ends.
func NewMockConnector(t *testing.T) *MockConnector {
	m := &MockConnector{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConnector) Query(ctx context.Context, statement string) (domain.Table, error) {
	args := m.Called(ctx, statement)
	table, _ := args.Get(0).(domain.Table)
	return table, args.Error(1)
}

func (m *MockConnector) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConnector) Close() error {
	args := m.Called()
	return args.Error(0)
}

// CountingOpener returns an opener that hands out conn and counts calls, and
// a func reading the count.
func CountingOpener(conn interfaces.Connector, err error) (func(context.Context) (interfaces.Connector, error), func() int) {
	var calls atomic.Int32
	open := func(context.Context) (interfaces.Connector, error) {
		calls.Add(1)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return open, func() int { return int(calls.Load()) }
}

var _ interfaces.Connector = (*MockConnector)(nil)
