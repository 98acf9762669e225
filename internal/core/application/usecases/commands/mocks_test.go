package commands_test

import (
	"context"
	"testing"
	"time"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetForBuyer(
	ctx context.Context, id kernel.UUID, buyerID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, id, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForKitchen(
	ctx context.Context, id kernel.UUID, kitchenID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, id, kitchenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSubscriptionRequestRepository struct{ mock.Mock }

func (m *MockSubscriptionRequestRepository) Add(ctx context.Context, r *subscription.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockSubscriptionRequestRepository) Update(ctx context.Context, r *subscription.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockSubscriptionRequestRepository) GetForKitchen(
	ctx context.Context, id kernel.UUID, kitchenID kernel.UUID,
) (*subscription.Request, error) {
	args := m.Called(ctx, id, kitchenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Request), args.Error(1)
}

func (m *MockSubscriptionRequestRepository) GetPendingCreatedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*subscription.Request, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Request), args.Error(1)
}

type MockPlanRepository struct{ mock.Mock }

func (m *MockPlanRepository) Add(ctx context.Context, p *subscription.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Update(ctx context.Context, p *subscription.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPlanRepository) Get(ctx context.Context, id kernel.UUID) (*subscription.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Plan), args.Error(1)
}

type MockSubscriptionUoW struct{ mock.Mock }

func (m *MockSubscriptionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubscriptionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubscriptionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSubscriptionUoW) SubscriptionRequestRepository() ports.SubscriptionRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.SubscriptionRequestRepository)
}

func (m *MockSubscriptionUoW) PlanRepository() ports.PlanRepository {
	args := m.Called()
	return args.Get(0).(ports.PlanRepository)
}

type MockSubscriptionUoWFactory struct{ mock.Mock }

func (m *MockSubscriptionUoWFactory) Create() commands.SubscriptionUoW {
	args := m.Called()
	return args.Get(0).(commands.SubscriptionUoW)
}

// MockDispatcher records dispatched notification intents.
type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Dispatch(n ports.Notification) {
	m.Called(n)
}

func newTestOrder(t *testing.T, buyerID kernel.UUID, kitchenID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 2, 120)
	require.NoError(t, err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), buyerID, kitchenID, []order.LineItem{item}, "no onions")
	require.NoError(t, err)

	return testOrder
}

func newPendingRequest(t *testing.T, kitchenID kernel.UUID, planID kernel.UUID) *subscription.Request {
	t.Helper()

	request, err := subscription.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), kitchenID, planID, 1500, "18:00-20:00")
	require.NoError(t, err)

	return request
}

func newTestPlan(t *testing.T, id kernel.UUID, kitchenID kernel.UUID) *subscription.Plan {
	t.Helper()

	plan, err := subscription.NewPlan(id, kitchenID, "Weekly Dinner Box", 1600)
	require.NoError(t, err)

	return plan
}
