package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
)

// RecipientKind identifies which side of the marketplace a notification
// intent addresses.
type RecipientKind string

const (
	// RecipientBuyer addresses the buyer account identified by RecipientID.
	RecipientBuyer RecipientKind = "buyer"
	// RecipientKitchen addresses the kitchen identified by RecipientID.
	RecipientKitchen RecipientKind = "kitchen"
)

// NotificationKind classifies the event a notification intent describes.
type NotificationKind string

const (
	NotificationOrderCancelled      NotificationKind = "order_cancelled"
	NotificationOrderConfirmed      NotificationKind = "order_confirmed"
	NotificationOrderCompleted      NotificationKind = "order_completed"
	NotificationSubscriptionActive  NotificationKind = "subscription_approved"
	NotificationSubscriptionReject  NotificationKind = "subscription_rejected"
	NotificationSubscriptionExpired NotificationKind = "subscription_expired"
)

// Notification is a notification intent: who should hear about what.
// Delivery transport (push, email) is outside this core; the intent is
// handed to a sink and forgotten.
type Notification struct {
	RecipientKind RecipientKind
	RecipientID   kernel.UUID
	Kind          NotificationKind
	Title         string
	Message       string
}

// NotificationSink transports notification intents out of the process.
// At-least-once is acceptable; exactly-once is neither guaranteed nor
// required.
type NotificationSink interface {
	Emit(ctx context.Context, notification Notification) error
}

// NotificationDispatcher decouples notification emission from the
// synchronous operation result. Dispatch never blocks the caller and
// never reports failure to it: a state transition that already committed
// must not be affected by a notification problem, which is only logged.
type NotificationDispatcher interface {
	Dispatch(notification Notification)
}
