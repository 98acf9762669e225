// Package queries contains read-side operations in the CQRS architecture.
// Queries never mutate state; the delivery quote in particular is a pure
// computation over resolved coordinates.
package queries

import (
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/pkg/guard"
)

var ErrQuoteDeliveryQueryIsNotConstructed = errors.New(
	"QuoteDeliveryQuery must be created via NewQuoteDeliveryQuery constructor",
)

// QuoteDeliveryQuery asks what delivering from a kitchen to a buyer would
// cost. Both parties are named by id; their stored coordinates are
// resolved by the handler.
type QuoteDeliveryQuery struct { //nolint:recvcheck //using for validation
	kitchenID kernel.UUID
	buyerID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewQuoteDeliveryQuery creates a delivery quote query for a kitchen/buyer pair.
func NewQuoteDeliveryQuery(kitchenID kernel.UUID, buyerID kernel.UUID) (QuoteDeliveryQuery, error) {
	query := QuoteDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setKitchenID(kitchenID),
		query.setBuyerID(buyerID),
	); err != nil {
		return QuoteDeliveryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q QuoteDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrQuoteDeliveryQueryIsNotConstructed)
}

// KitchenID returns the identifier of the delivering kitchen.
func (q QuoteDeliveryQuery) KitchenID() kernel.UUID {
	return q.kitchenID
}

// BuyerID returns the identifier of the receiving buyer.
func (q QuoteDeliveryQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

func (q *QuoteDeliveryQuery) setKitchenID(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}

	q.kitchenID = kitchenID
	return nil
}

func (q *QuoteDeliveryQuery) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	q.buyerID = buyerID
	return nil
}
