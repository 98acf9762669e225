package commands_test

import (
	"testing"
	"time"

	"mealmarket/internal/core/application/usecases/commands"
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/core/ports"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireSubscriptionRequestsCommandHandler_Handle_ExpiresStaleRequests(t *testing.T) {
	ctx := t.Context()

	kitchenID := kernel.NewUUID()
	planID := kernel.NewUUID()
	first := newPendingRequest(t, kitchenID, planID)
	second := newPendingRequest(t, kitchenID, planID)

	cmd, err := commands.NewExpireSubscriptionRequestsCommand(72 * time.Hour)
	require.NoError(t, err)

	requestRepo := new(MockSubscriptionRequestRepository)
	uow := new(MockSubscriptionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRequestRepository").Return(requestRepo).Once(),
		requestRepo.On("GetPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*subscription.Request{first, second}, nil).Once(),
		requestRepo.On("Update", ctx, first).Return(nil).Once(),
		requestRepo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotificationSubscriptionExpired &&
			n.Message == commands.ExpiredRequestReason
	})).Twice()

	handler := commands.NewExpireSubscriptionRequestsCommandHandler(factory, dispatcher)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, expired)
	assert.Equal(t, subscription.Cancelled, first.Status())
	assert.Equal(t, subscription.Cancelled, second.Status())
	assert.Equal(t, commands.ExpiredRequestReason, first.CancellationReason())

	requestRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestExpireSubscriptionRequestsCommandHandler_Handle_NothingToExpire(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewExpireSubscriptionRequestsCommand(72 * time.Hour)
	require.NoError(t, err)

	requestRepo := new(MockSubscriptionRequestRepository)
	uow := new(MockSubscriptionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRequestRepository").Return(requestRepo).Once(),
		requestRepo.On("GetPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*subscription.Request{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)

	handler := commands.NewExpireSubscriptionRequestsCommandHandler(factory, dispatcher)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, expired)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestExpireSubscriptionRequestsCommandHandler_Handle_SkipsVersionConflicts(t *testing.T) {
	ctx := t.Context()

	kitchenID := kernel.NewUUID()
	planID := kernel.NewUUID()
	contested := newPendingRequest(t, kitchenID, planID)
	stale := newPendingRequest(t, kitchenID, planID)

	cmd, err := commands.NewExpireSubscriptionRequestsCommand(72 * time.Hour)
	require.NoError(t, err)

	requestRepo := new(MockSubscriptionRequestRepository)
	uow := new(MockSubscriptionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SubscriptionRequestRepository").Return(requestRepo).Once(),
		requestRepo.On("GetPendingCreatedBefore", ctx, mock.AnythingOfType("time.Time")).
			Return([]*subscription.Request{contested, stale}, nil).Once(),
		// A concurrent approval won the race for the first request.
		requestRepo.On("Update", ctx, contested).
			Return(errs.NewVersionIsInvalidError("subscription request", nil)).Once(),
		requestRepo.On("Update", ctx, stale).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSubscriptionUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := new(MockDispatcher)
	dispatcher.On("Dispatch", mock.MatchedBy(func(n ports.Notification) bool {
		return n.RecipientID == stale.BuyerID()
	})).Once()

	handler := commands.NewExpireSubscriptionRequestsCommandHandler(factory, dispatcher)
	expired, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	dispatcher.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestExpireSubscriptionRequestsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.ExpireSubscriptionRequestsCommand{} // not constructed properly

	factory := new(MockSubscriptionUoWFactory)
	dispatcher := new(MockDispatcher)

	handler := commands.NewExpireSubscriptionRequestsCommandHandler(factory, dispatcher)
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrExpireSubscriptionRequestsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
