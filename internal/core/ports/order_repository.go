package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Lookups are always scoped to an owner. A miss and an ownership mismatch
// are indistinguishable to the caller (both surface the not-found error),
// so unauthorized callers cannot probe for the existence of foreign
// orders.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check: when the stored version no longer
	// matches the version the aggregate was read at, the update fails
	// with a version conflict and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetForBuyer retrieves an order by id, scoped to the owning buyer.
	GetForBuyer(ctx context.Context, id kernel.UUID, buyerID kernel.UUID) (*order.Order, error)

	// GetForKitchen retrieves an order by id, scoped to the fulfilling kitchen.
	GetForKitchen(ctx context.Context, id kernel.UUID, kitchenID kernel.UUID) (*order.Order, error)
}
