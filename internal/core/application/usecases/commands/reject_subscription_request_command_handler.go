package commands

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/core/ports"
)

// RejectSubscriptionRequestCommandHandler processes kitchen rejections of
// pending subscription requests.
//
// Rejection never touches the plan's subscriber or revenue counters: they
// were never incremented for a still-Pending request, and the asymmetry
// with approval is what keeps them equal to the Active request set.
type RejectSubscriptionRequestCommandHandler struct {
	uowFactory SubscriptionUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewRejectSubscriptionRequestCommandHandler creates a handler for
// subscription request rejections.
func NewRejectSubscriptionRequestCommandHandler(
	uowFactory SubscriptionUoWFactory,
	dispatcher ports.NotificationDispatcher,
) RejectSubscriptionRequestCommandHandler {
	return RejectSubscriptionRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle rejects the request named by the command, recording the
// kitchen's reason (or the default when none was supplied). Same
// ownership and already-processed guards as approval. Returns the
// updated request; the buyer is notified with the reason after commit.
func (h RejectSubscriptionRequestCommandHandler) Handle(
	ctx context.Context,
	command RejectSubscriptionRequestCommand,
) (*subscription.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.SubscriptionRequestRepository()

	request, err := requestRepo.GetForKitchen(ctx, command.RequestID(), command.KitchenID())
	if err != nil {
		return nil, err
	}

	if err = request.Reject(command.Reason(), time.Now()); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ports.Notification{
		RecipientKind: ports.RecipientBuyer,
		RecipientID:   request.BuyerID(),
		Kind:          ports.NotificationSubscriptionReject,
		Title:         "Subscription request declined",
		Message:       request.CancellationReason(),
	})

	return request, nil
}
