package mocks

import (
	"context"

	"github.com/segyhp/credit-ledger/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTotalsCache struct {
	mock.Mock
}

func (m *MockTotalsCache) Get(ctx context.Context) (domain.DashboardTotals, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardTotals), args.Bool(1), args.Error(2)
}

func (m *MockTotalsCache) Set(ctx context.Context, totals domain.DashboardTotals) error {
	args := m.Called(ctx, totals)
	return args.Error(0)
}

func (m *MockTotalsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
