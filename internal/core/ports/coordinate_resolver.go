package ports

import (
	"context"

	"mealmarket/internal/core/domain/model/kernel"
)

// CoordinateResolver resolves stored locations for the two sides of a
// delivery quote. Missing data is reported as a nil point, not an error:
// a buyer who never set an address gets a "please set your location"
// style quote, not a failure.
type CoordinateResolver interface {
	// KitchenLocation returns the kitchen's stored coordinates, or nil
	// when none are on file.
	KitchenLocation(ctx context.Context, kitchenID kernel.UUID) (*kernel.GeoPoint, error)

	// BuyerLocation returns the buyer's stored coordinates, or nil when
	// none are on file.
	BuyerLocation(ctx context.Context, buyerID kernel.UUID) (*kernel.GeoPoint, error)
}
