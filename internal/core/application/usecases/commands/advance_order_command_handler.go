package commands

import (
	"context"
	"fmt"

	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/ports"
)

// AdvanceOrderCommandHandler processes kitchen-side order progression.
// Rejects any transition not in the state machine with
// order.ErrInvalidTransition, including same-state no-ops and skipped
// states. Confirmation and completion notify the buyer after commit.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewAdvanceOrderCommandHandler creates a handler for order progression.
func NewAdvanceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle advances the order named by the command to its target status.
// The lookup is scoped to the acting kitchen, so a foreign order is
// reported exactly like a missing one. Returns the updated order.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, command AdvanceOrderCommand) (*order.Order, error) {
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

	repo := uow.OrderRepository()

	aggregate, err := repo.GetForKitchen(ctx, command.OrderID(), command.KitchenID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Advance(command.TargetStatus()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if notification, ok := buyerProgressNotification(aggregate); ok {
		h.dispatcher.Dispatch(notification)
	}

	return aggregate, nil
}

// buyerProgressNotification builds the buyer-facing intent for the
// transitions a buyer cares about hearing of. Intermediate kitchen steps
// stay silent.
func buyerProgressNotification(aggregate *order.Order) (ports.Notification, bool) {
	switch aggregate.Status() {
	case order.Confirmed:
		return ports.Notification{
			RecipientKind: ports.RecipientBuyer,
			RecipientID:   aggregate.BuyerID(),
			Kind:          ports.NotificationOrderConfirmed,
			Title:         "Order confirmed",
			Message:       fmt.Sprintf("Order %s was confirmed by the kitchen", aggregate.ID()),
		}, true
	case order.Completed:
		return ports.Notification{
			RecipientKind: ports.RecipientBuyer,
			RecipientID:   aggregate.BuyerID(),
			Kind:          ports.NotificationOrderCompleted,
			Title:         "Order delivered",
			Message:       fmt.Sprintf("Order %s was delivered", aggregate.ID()),
		}, true
	default:
		return ports.Notification{}, false
	}
}
