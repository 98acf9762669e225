package queries

import (
	"context"

	"mealmarket/internal/core/domain/services"
	"mealmarket/internal/core/ports"
)

// QuoteDeliveryQueryHandler resolves the stored coordinates of the two
// parties and prices the delivery between them.
//
// A party without a stored location yields an unavailable quote with the
// missing-coordinates reason rather than an error.
// Identical coordinates always produce an identical quote.
type QuoteDeliveryQueryHandler struct {
	resolver ports.CoordinateResolver
	pricer   services.DeliveryPricer
}

// NewQuoteDeliveryQueryHandler creates a handler for delivery quote queries.
func NewQuoteDeliveryQueryHandler(resolver ports.CoordinateResolver) QuoteDeliveryQueryHandler {
	return QuoteDeliveryQueryHandler{
		resolver: resolver,
		pricer:   services.NewDeliveryPricer(),
	}
}

// Handle computes the delivery quote for the query's kitchen/buyer pair.
func (h QuoteDeliveryQueryHandler) Handle(
	ctx context.Context,
	query QuoteDeliveryQuery,
) (services.DeliveryQuote, error) {
	if err := query.Validate(); err != nil {
		return services.DeliveryQuote{}, err
	}

	origin, err := h.resolver.KitchenLocation(ctx, query.KitchenID())
	if err != nil {
		return services.DeliveryQuote{}, err
	}

	destination, err := h.resolver.BuyerLocation(ctx, query.BuyerID())
	if err != nil {
		return services.DeliveryQuote{}, err
	}

	return h.pricer.Quote(origin, destination)
}
