package commands_test

import (
	"errors"
	"testing"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	buyerID := kernel.NewUUID()
	kitchenID := kernel.NewUUID()
	testOrder := newTestOrder(t, buyerID, kitchenID)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), buyerID, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForBuyer", ctx, testOrder.ID(), buyerID).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotificationOrderCancelled &&
			n.RecipientKind == ports.RecipientKitchen &&
			n.RecipientID == kitchenID
	})).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	updated, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Contains(t, updated.Notes(), "Cancelled by buyer: changed my mind")

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	dispatcher := new(MockDispatcher)

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestCancelOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	buyerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCancelOrderCommand(orderID, buyerID, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForBuyer", ctx, orderID, buyerID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestCancelOrderCommandHandler_Handle_NotCancellable(t *testing.T) {
	ctx := t.Context()

	buyerID := kernel.NewUUID()
	kitchenID := kernel.NewUUID()
	testOrder := newTestOrder(t, buyerID, kitchenID)
	require.NoError(t, testOrder.Advance(order.Confirmed))
	require.NoError(t, testOrder.Advance(order.Preparing))

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), buyerID, "too late")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForBuyer", ctx, testOrder.ID(), buyerID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrNotCancellable)
	assert.Equal(t, order.Preparing, testOrder.Status())
	repo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestCancelOrderCommandHandler_Handle_SecondCancelFails(t *testing.T) {
	ctx := t.Context()

	buyerID := kernel.NewUUID()
	kitchenID := kernel.NewUUID()
	testOrder := newTestOrder(t, buyerID, kitchenID)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), buyerID, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()
	repo.On("GetForBuyer", ctx, testOrder.ID(), buyerID).Return(testOrder, nil).Twice()
	repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Twice()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.Anything).Once()

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)

	_, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	_, err = handler.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrNotCancellable)

	// The repeat attempt must not notify the kitchen again.
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestCancelOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	buyerID := kernel.NewUUID()
	kitchenID := kernel.NewUUID()
	testOrder := newTestOrder(t, buyerID, kitchenID)

	cmd, err := commands.NewCancelOrderCommand(testOrder.ID(), buyerID, "changed my mind")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForBuyer", ctx, testOrder.ID(), buyerID).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewCancelOrderCommandHandler(factory, dispatcher)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	dispatcher.AssertNotCalled(t, "Dispatch")
}
