package commands

import (
	"context"
	"fmt"

	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/ports"
)

// CancelOrderCommandHandler processes buyer-initiated order cancellations.
//
// The status write and the note append commit in one transaction; the
// notification to the kitchen is dispatched only after the commit
// succeeded, so a notification problem can never roll back a confirmed
// cancellation.
//
// Example:
//
//	handler := NewCancelOrderCommandHandler(uowFactory, dispatcher)
//	cmd, _ := NewCancelOrderCommand(orderID, buyerID, "changed my mind")
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order for this buyer
//	case errors.Is(err, order.ErrNotCancellable):
//	    // cooking already started, or already cancelled
//	}
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCancelOrderCommandHandler creates a handler for order cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle cancels the order named by the command on behalf of its buyer.
//
// The lookup is scoped to the acting buyer: an order that exists but
// belongs to someone else is reported exactly like a missing one. Orders
// already being prepared, delivered, completed, or cancelled fail with
// order.ErrNotCancellable; in particular a repeated cancel fails rather
// than silently succeeding, and emits no second notification.
//
// Returns the updated order on success.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
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

	aggregate, err := repo.GetForBuyer(ctx, command.OrderID(), command.BuyerID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.Cancel(command.Reason()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ports.Notification{
		RecipientKind: ports.RecipientKitchen,
		RecipientID:   aggregate.KitchenID(),
		Kind:          ports.NotificationOrderCancelled,
		Title:         "Order cancelled",
		Message:       fmt.Sprintf("Order %s was cancelled by the buyer: %s", aggregate.ID(), command.Reason()),
	})

	return aggregate, nil
}
