package commands

import (
	"context"
	"fmt"
	"time"

	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/core/ports"
)

// ApproveSubscriptionRequestCommandHandler processes kitchen approvals of
// pending subscription requests.
//
// Approval is the only operation that mutates the plan aggregates: the
// request's status write and the plan's subscriber/revenue increments
// commit in one transaction, so the counters always reflect exactly the
// set of Active requests. The revenue grows by the price locked into the
// request, not the plan's current listed price.
//
// Example:
//
//	handler := NewApproveSubscriptionRequestCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewApproveSubscriptionRequestCommand(requestID, kitchenID)
//	updated, err := handler.Handle(ctx, cmd)
//	var processed *subscription.AlreadyProcessedError
//	if errors.As(err, &processed) {
//	    // request already became processed.Status
//	}
type ApproveSubscriptionRequestCommandHandler struct {
	uowFactory SubscriptionUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewApproveSubscriptionRequestCommandHandler creates a handler for
// subscription request approvals.
func NewApproveSubscriptionRequestCommandHandler(
	uowFactory SubscriptionUoWFactory,
	dispatcher ports.NotificationDispatcher,
) ApproveSubscriptionRequestCommandHandler {
	return ApproveSubscriptionRequestCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle approves the request named by the command.
//
// The lookup is scoped to the acting kitchen; a request owned by another
// kitchen is reported exactly like a missing one. A request that already
// reached a terminal status fails with an AlreadyProcessedError carrying
// that status, and the plan aggregate is not touched again. Together with
// the version-checked update this keeps a double approval from
// double-incrementing the plan counters. Returns the updated request.
func (h ApproveSubscriptionRequestCommandHandler) Handle(
	ctx context.Context,
	command ApproveSubscriptionRequestCommand,
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
	planRepo := uow.PlanRepository()

	request, err := requestRepo.GetForKitchen(ctx, command.RequestID(), command.KitchenID())
	if err != nil {
		return nil, err
	}

	if err = request.Approve(time.Now()); err != nil {
		return nil, err
	}

	plan, err := planRepo.Get(ctx, request.PlanID())
	if err != nil {
		return nil, err
	}

	if err = plan.RegisterSubscriber(request.MonthlyPrice()); err != nil {
		return nil, err
	}

	if err = requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	if err = planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ports.Notification{
		RecipientKind: ports.RecipientBuyer,
		RecipientID:   request.BuyerID(),
		Kind:          ports.NotificationSubscriptionActive,
		Title:         "Subscription approved",
		Message:       fmt.Sprintf("Your subscription to %s is now active", plan.Name()),
	})

	return request, nil
}
