package ports

import (
	"context"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"
)

// SubscriptionRequestRepository defines the persistence contract for
// subscription request aggregates. Lookups are scoped to the owning
// kitchen; a miss and an ownership mismatch are indistinguishable.
type SubscriptionRequestRepository interface {
	// Add persists a new subscription request.
	Add(ctx context.Context, aggregate *subscription.Request) error

	// Update persists changes to an existing request using an optimistic
	// version check, failing with a version conflict on concurrent writes.
	Update(ctx context.Context, aggregate *subscription.Request) error

	// GetForKitchen retrieves a request by id, scoped to the owning kitchen.
	GetForKitchen(ctx context.Context, id kernel.UUID, kitchenID kernel.UUID) (*subscription.Request, error)

	// GetPendingCreatedBefore retrieves all Pending requests created
	// before the cutoff. Used by the expiry job to lapse stale requests.
	GetPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*subscription.Request, error)
}

// PlanRepository defines the persistence contract for plan aggregates.
type PlanRepository interface {
	// Add persists a new plan.
	Add(ctx context.Context, aggregate *subscription.Plan) error

	// Update persists changes to an existing plan using an optimistic
	// version check. The subscriber/revenue figures ride along with the
	// request status change inside one transaction.
	Update(ctx context.Context, aggregate *subscription.Plan) error

	// Get retrieves a plan by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*subscription.Plan, error)
}
