package commands

import (
	"context"
	"errors"
	"time"

	"mealmarket/internal/core/ports"
	"mealmarket/internal/pkg/errs"
)

// ExpireSubscriptionRequestsCommandHandler lapses Pending subscription
// requests the kitchen never answered. It runs from the scheduler, not
// from a user-facing call.
//
// A request racing a concurrent approval loses the version check on
// update; such requests are skipped rather than failing the whole batch,
// since the kitchen's explicit decision always outranks the lapse.
// Expiry never touches plan aggregates.
type ExpireSubscriptionRequestsCommandHandler struct {
	uowFactory SubscriptionUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewExpireSubscriptionRequestsCommandHandler creates a handler for the
// scheduled request-expiry sweep.
func NewExpireSubscriptionRequestsCommandHandler(
	uowFactory SubscriptionUoWFactory,
	dispatcher ports.NotificationDispatcher,
) ExpireSubscriptionRequestsCommandHandler {
	return ExpireSubscriptionRequestsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle cancels every Pending request older than the command's max age
// with the generic expiry reason, notifying each affected buyer after
// commit. Returns the number of requests expired.
func (h ExpireSubscriptionRequestsCommandHandler) Handle(
	ctx context.Context,
	command ExpireSubscriptionRequestsCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.SubscriptionRequestRepository()

	cutoff := time.Now().UTC().Add(-command.MaxAge())
	stale, err := requestRepo.GetPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	notifications := make([]ports.Notification, 0, len(stale))
	for _, request := range stale {
		if err = request.Reject(ExpiredRequestReason, time.Now()); err != nil {
			return 0, err
		}

		if err = requestRepo.Update(ctx, request); err != nil {
			// A concurrent approve/reject won the race for this request.
			if errors.Is(err, errs.ErrVersionIsInvalid) {
				continue
			}
			return 0, err
		}

		notifications = append(notifications, ports.Notification{
			RecipientKind: ports.RecipientBuyer,
			RecipientID:   request.BuyerID(),
			Kind:          ports.NotificationSubscriptionExpired,
			Title:         "Subscription request expired",
			Message:       ExpiredRequestReason,
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, notification := range notifications {
		h.dispatcher.Dispatch(notification)
	}

	return len(notifications), nil
}
