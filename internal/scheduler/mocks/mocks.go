// Package mocks holds hand-maintained testify mocks for the scheduler's
// dependencies, following the mockery expecter convention used in the tests.
package mocks

import (
	"context"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockHoldExpirer struct {
	mock.Mock
}

func NewMockHoldExpirer(t testingT) *MockHoldExpirer {
	m := &MockHoldExpirer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockHoldExpirer) CancelExpired(ctx context.Context) ([]*domain.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type MockHoldExpirerExpecter struct {
	mock *mock.Mock
}

func (m *MockHoldExpirer) EXPECT() *MockHoldExpirerExpecter {
	return &MockHoldExpirerExpecter{mock: &m.Mock}
}

func (e *MockHoldExpirerExpecter) CancelExpired(ctx any) *mock.Call {
	return e.mock.On("CancelExpired", ctx)
}
