package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/transport-service/internal/domain"
)

// MockRoutingEngine is a mock of RoutingEngine
type MockRoutingEngine struct {
	mock.Mock
}

func (m *MockRoutingEngine) Route(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineResponse), args.Error(1)
}

func (m *MockRoutingEngine) Isochrone(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineResponse), args.Error(1)
}

func (m *MockRoutingEngine) TraceRoute(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineResponse), args.Error(1)
}

func (m *MockRoutingEngine) TraceAttributes(ctx context.Context, payload domain.Payload) (*domain.EngineResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EngineResponse), args.Error(1)
}

func (m *MockRoutingEngine) Status(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAccountingPublisher is a mock of AccountingPublisher
type MockAccountingPublisher struct {
	mock.Mock
}

func (m *MockAccountingPublisher) Publish(ctx context.Context, event *domain.AccountingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUsageRepository is a mock of UsageRepository
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) Record(ctx context.Context, event *domain.AccountingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockUsageRepository) GetUsage(ctx context.Context) (*domain.UsageStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageStats), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetUsage(ctx context.Context) (*domain.UsageStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageStats), args.Error(1)
}

func (m *MockCacheRepository) SetUsage(ctx context.Context, stats *domain.UsageStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateUsage(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
