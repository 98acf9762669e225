package http

import (
	"time"

	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/core/domain/services"
)

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// AdvanceOrderRequest is the body of POST /api/v1/orders/:id/advance.
type AdvanceOrderRequest struct {
	TargetStatus string `json:"target_status"`
}

// RejectSubscriptionRequest is the body of
// POST /api/v1/subscription-requests/:id/reject. The reason is optional.
type RejectSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// OrderLineItem is one order line in an order response.
type OrderLineItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	Subtotal   int64  `json:"subtotal"`
}

// Order is the JSON representation of an order aggregate.
type Order struct {
	ID          string          `json:"id"`
	BuyerID     string          `json:"buyer_id"`
	KitchenID   string          `json:"kitchen_id"`
	Items       []OrderLineItem `json:"items"`
	TotalAmount int64           `json:"total_amount"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SubscriptionRequest is the JSON representation of a subscription request.
type SubscriptionRequest struct {
	ID                 string     `json:"id"`
	BuyerID            string     `json:"buyer_id"`
	KitchenID          string     `json:"kitchen_id"`
	PlanID             string     `json:"plan_id"`
	Status             string     `json:"status"`
	MonthlyPrice       int64      `json:"monthly_price"`
	DeliveryWindow     string     `json:"delivery_window,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// DeliveryQuote is the JSON representation of a delivery pricing result.
type DeliveryQuote struct {
	DistanceKM float64 `json:"distance_km,omitempty"`
	Fee        *int64  `json:"fee,omitempty"`
	Available  bool    `json:"available"`
	Reason     string  `json:"reason,omitempty"`
}

func orderToResponse(aggregate *order.Order) Order {
	items := make([]OrderLineItem, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderLineItem{
			MenuItemID: item.MenuItemID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Subtotal:   item.Subtotal(),
		})
	}

	return Order{
		ID:          aggregate.ID().String(),
		BuyerID:     aggregate.BuyerID().String(),
		KitchenID:   aggregate.KitchenID().String(),
		Items:       items,
		TotalAmount: aggregate.TotalAmount(),
		Status:      aggregate.Status().String(),
		Notes:       aggregate.Notes(),
		CreatedAt:   aggregate.CreatedAt(),
	}
}

func requestToResponse(request *subscription.Request) SubscriptionRequest {
	return SubscriptionRequest{
		ID:                 request.ID().String(),
		BuyerID:            request.BuyerID().String(),
		KitchenID:          request.KitchenID().String(),
		PlanID:             request.PlanID().String(),
		Status:             request.Status().String(),
		MonthlyPrice:       request.MonthlyPrice(),
		DeliveryWindow:     request.DeliveryWindow(),
		ConfirmedAt:        request.ConfirmedAt(),
		CancelledAt:        request.CancelledAt(),
		CancellationReason: request.CancellationReason(),
		CreatedAt:          request.CreatedAt(),
	}
}

func quoteToResponse(quote services.DeliveryQuote) DeliveryQuote {
	return DeliveryQuote{
		DistanceKM: quote.DistanceKM,
		Fee:        quote.Fee,
		Available:  quote.Available,
		Reason:     string(quote.Reason),
	}
}
