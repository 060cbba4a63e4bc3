// Package mocks holds hand-maintained testify mocks for the service ports,
// following the mockery expecter convention used in the tests.
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

// --- ReservationRepo ---

type MockReservationRepo struct {
	mock.Mock
}

func NewMockReservationRepo(t testingT) *MockReservationRepo {
	m := &MockReservationRepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReservationRepo) PlaceHold(ctx context.Context, res *domain.Reservation, buffers domain.BufferConfig) error {
	args := m.Called(ctx, res, buffers)
	return args.Error(0)
}

func (m *MockReservationRepo) Promote(ctx context.Context, id string, input domain.PromoteInput, buffers domain.BufferConfig) (*domain.Reservation, error) {
	args := m.Called(ctx, id, input, buffers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) Cancel(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepo) AvailableUnits(ctx context.Context, skuID string, start, end time.Time, buffers domain.BufferConfig, excludeReservationID string) (int, error) {
	args := m.Called(ctx, skuID, start, end, buffers, excludeReservationID)
	return args.Int(0), args.Error(1)
}

func (m *MockReservationRepo) CancelExpired(ctx context.Context, grace time.Duration) ([]*domain.Reservation, error) {
	args := m.Called(ctx, grace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type MockReservationRepoExpecter struct {
	mock *mock.Mock
}

func (m *MockReservationRepo) EXPECT() *MockReservationRepoExpecter {
	return &MockReservationRepoExpecter{mock: &m.Mock}
}

func (e *MockReservationRepoExpecter) PlaceHold(ctx, res, buffers any) *mock.Call {
	return e.mock.On("PlaceHold", ctx, res, buffers)
}

func (e *MockReservationRepoExpecter) Promote(ctx, id, input, buffers any) *mock.Call {
	return e.mock.On("Promote", ctx, id, input, buffers)
}

func (e *MockReservationRepoExpecter) Cancel(ctx, id any) *mock.Call {
	return e.mock.On("Cancel", ctx, id)
}

func (e *MockReservationRepoExpecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

func (e *MockReservationRepoExpecter) AvailableUnits(ctx, skuID, start, end, buffers, excludeReservationID any) *mock.Call {
	return e.mock.On("AvailableUnits", ctx, skuID, start, end, buffers, excludeReservationID)
}

func (e *MockReservationRepoExpecter) CancelExpired(ctx, grace any) *mock.Call {
	return e.mock.On("CancelExpired", ctx, grace)
}

// --- BusinessRepo ---

type MockBusinessRepo struct {
	mock.Mock
}

func NewMockBusinessRepo(t testingT) *MockBusinessRepo {
	m := &MockBusinessRepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBusinessRepo) Create(ctx context.Context, b *domain.Business) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBusinessRepo) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type MockBusinessRepoExpecter struct {
	mock *mock.Mock
}

func (m *MockBusinessRepo) EXPECT() *MockBusinessRepoExpecter {
	return &MockBusinessRepoExpecter{mock: &m.Mock}
}

func (e *MockBusinessRepoExpecter) Create(ctx, b any) *mock.Call {
	return e.mock.On("Create", ctx, b)
}

func (e *MockBusinessRepoExpecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

// --- SKURepo ---

type MockSKURepo struct {
	mock.Mock
}

func NewMockSKURepo(t testingT) *MockSKURepo {
	m := &MockSKURepo{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSKURepo) Create(ctx context.Context, s *domain.InventorySKU) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSKURepo) GetByID(ctx context.Context, id string) (*domain.InventorySKU, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventorySKU), args.Error(1)
}

func (m *MockSKURepo) ListByBusiness(ctx context.Context, businessID string) ([]*domain.InventorySKU, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InventorySKU), args.Error(1)
}

type MockSKURepoExpecter struct {
	mock *mock.Mock
}

func (m *MockSKURepo) EXPECT() *MockSKURepoExpecter {
	return &MockSKURepoExpecter{mock: &m.Mock}
}

func (e *MockSKURepoExpecter) Create(ctx, s any) *mock.Call {
	return e.mock.On("Create", ctx, s)
}

func (e *MockSKURepoExpecter) GetByID(ctx, id any) *mock.Call {
	return e.mock.On("GetByID", ctx, id)
}

func (e *MockSKURepoExpecter) ListByBusiness(ctx, businessID any) *mock.Call {
	return e.mock.On("ListByBusiness", ctx, businessID)
}

// --- ReservationNotifier ---

type MockReservationNotifier struct {
	mock.Mock
}

func NewMockReservationNotifier(t testingT) *MockReservationNotifier {
	m := &MockReservationNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReservationNotifier) NotifyReservationConfirmed(ctx context.Context, b *domain.Business, r *domain.Reservation) {
	m.Called(ctx, b, r)
}

func (m *MockReservationNotifier) NotifyHoldExpired(ctx context.Context, b *domain.Business, r *domain.Reservation) {
	m.Called(ctx, b, r)
}

type MockReservationNotifierExpecter struct {
	mock *mock.Mock
}

func (m *MockReservationNotifier) EXPECT() *MockReservationNotifierExpecter {
	return &MockReservationNotifierExpecter{mock: &m.Mock}
}

func (e *MockReservationNotifierExpecter) NotifyReservationConfirmed(ctx, b, r any) *mock.Call {
	return e.mock.On("NotifyReservationConfirmed", ctx, b, r)
}

func (e *MockReservationNotifierExpecter) NotifyHoldExpired(ctx, b, r any) *mock.Call {
	return e.mock.On("NotifyHoldExpired", ctx, b, r)
}

// --- BusinessCache ---

type MockBusinessCache struct {
	mock.Mock
}

func NewMockBusinessCache(t testingT) *MockBusinessCache {
	m := &MockBusinessCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBusinessCache) Get(ctx context.Context, id string) (*domain.Business, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Business), args.Bool(1)
}

func (m *MockBusinessCache) Set(ctx context.Context, b *domain.Business) {
	m.Called(ctx, b)
}

func (m *MockBusinessCache) Invalidate(ctx context.Context, id string) {
	m.Called(ctx, id)
}

type MockBusinessCacheExpecter struct {
	mock *mock.Mock
}

func (m *MockBusinessCache) EXPECT() *MockBusinessCacheExpecter {
	return &MockBusinessCacheExpecter{mock: &m.Mock}
}

func (e *MockBusinessCacheExpecter) Get(ctx, id any) *mock.Call {
	return e.mock.On("Get", ctx, id)
}

func (e *MockBusinessCacheExpecter) Set(ctx, b any) *mock.Call {
	return e.mock.On("Set", ctx, b)
}

func (e *MockBusinessCacheExpecter) Invalidate(ctx, id any) *mock.Call {
	return e.mock.On("Invalidate", ctx, id)
}
