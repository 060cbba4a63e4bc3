// Package mocks holds hand-maintained testify mocks for the handler's
// service interfaces, following the mockery expecter convention used in the
// tests.
package mocks

import (
	"context"
	"time"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/domain"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockReservationSvc

type MockReservationSvc struct {
	mock.Mock
}

func NewMockReservationSvc(t testingT) *MockReservationSvc {
	m := &MockReservationSvc{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReservationSvc) PlaceHold(ctx context.Context, input domain.HoldInput) (*domain.Reservation, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationSvc) Promote(ctx context.Context, id string, input domain.PromoteInput) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationSvc) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationSvc) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockReservationSvcExpecter struct {
	mock *mock.Mock
}

func (m *MockReservationSvc) EXPECT() *MockReservationSvcExpecter {
	return &MockReservationSvcExpecter{mock: &m.Mock}
}

func (e *MockReservationSvcExpecter) PlaceHold(ctx, input any) *mock.Call {
	return e.mock.On("PlaceHold", ctx, input)
}

func (e *MockReservationSvcExpecter) Promote(ctx, id, input any) *mock.Call {
	return e.mock.On("Promote", ctx, id, input)
}

func (e *MockReservationSvcExpecter) Cancel(ctx, id any) *mock.Call {
	return e.mock.On("Cancel", ctx, id)
}

func (e *MockReservationSvcExpecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

// MockAvailabilitySvc

type MockAvailabilitySvc struct {
	mock.Mock
}

func NewMockAvailabilitySvc(t testingT) *MockAvailabilitySvc {
	m := &MockAvailabilitySvc{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAvailabilitySvc) Check(ctx context.Context, businessID, skuID string, start, end time.Time) (int, error) {
	args := m.Called(ctx, businessID, skuID, start, end)
	return args.Int(0), args.Error(1)
}

type MockAvailabilitySvcExpecter struct {
	mock *mock.Mock
}

func (m *MockAvailabilitySvc) EXPECT() *MockAvailabilitySvcExpecter {
	return &MockAvailabilitySvcExpecter{mock: &m.Mock}
}

func (e *MockAvailabilitySvcExpecter) Check(ctx, businessID, skuID, start, end any) *mock.Call {
	return e.mock.On("Check", ctx, businessID, skuID, start, end)
}

// MockCatalogSvc

type MockCatalogSvc struct {
	mock.Mock
}

func NewMockCatalogSvc(t testingT) *MockCatalogSvc {
	m := &MockCatalogSvc{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogSvc) CreateBusiness(ctx context.Context, input domain.CreateBusinessInput) (*domain.Business, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockCatalogSvc) GetBusiness(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockCatalogSvc) CreateSKU(ctx context.Context, input domain.CreateSKUInput) (*domain.InventorySKU, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventorySKU), args.Error(1)
}

func (m *MockCatalogSvc) ListSKUs(ctx context.Context, businessID string) ([]*domain.InventorySKU, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InventorySKU), args.Error(1)
}

type MockCatalogSvcExpecter struct {
	mock *mock.Mock
}

func (m *MockCatalogSvc) EXPECT() *MockCatalogSvcExpecter {
	return &MockCatalogSvcExpecter{mock: &m.Mock}
}

func (e *MockCatalogSvcExpecter) CreateBusiness(ctx, input any) *mock.Call {
	return e.mock.On("CreateBusiness", ctx, input)
}

func (e *MockCatalogSvcExpecter) GetBusiness(ctx, id any) *mock.Call {
	return e.mock.On("GetBusiness", ctx, id)
}

func (e *MockCatalogSvcExpecter) CreateSKU(ctx, input any) *mock.Call {
	return e.mock.On("CreateSKU", ctx, input)
}

func (e *MockCatalogSvcExpecter) ListSKUs(ctx, businessID any) *mock.Call {
	return e.mock.On("ListSKUs", ctx, businessID)
}
