// Package subscriptionrepo provides data transfer objects and mapping functions
// for subscription request persistence.
package subscriptionrepo

import (
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"

	"github.com/google/uuid"
)

// RequestDTO represents the database structure for persisting subscription
// request aggregates. The monthly price is the one locked at request time,
// independent of later plan repricing.
type RequestDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID            uuid.UUID `gorm:"type:uuid;index"`
	KitchenID          uuid.UUID `gorm:"type:uuid;index"`
	PlanID             uuid.UUID `gorm:"type:uuid;index"`
	Status             int       `gorm:"index"`
	MonthlyPrice       int64
	DeliveryWindow     string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	Version            int64
}

// TableName specifies the database table name for subscription requests.
func (RequestDTO) TableName() string {
	return "subscription_requests"
}

// fromDomain converts a subscription request aggregate to its database representation.
func fromDomain(request *subscription.Request) RequestDTO {
	return RequestDTO{
		ID:                 request.ID().Bytes(),
		BuyerID:            request.BuyerID().Bytes(),
		KitchenID:          request.KitchenID().Bytes(),
		PlanID:             request.PlanID().Bytes(),
		Status:             int(request.Status()),
		MonthlyPrice:       request.MonthlyPrice(),
		DeliveryWindow:     request.DeliveryWindow(),
		ConfirmedAt:        request.ConfirmedAt(),
		CancelledAt:        request.CancelledAt(),
		CancellationReason: request.CancellationReason(),
		CreatedAt:          request.CreatedAt(),
		Version:            request.Version(),
	}
}

// toDomain converts a database DTO to a subscription request aggregate using RestoreRequest.
func toDomain(dto RequestDTO) (*subscription.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	kitchenID, err := kernel.UUIDFromBytes(dto.KitchenID[:])
	if err != nil {
		return nil, err
	}

	planID, err := kernel.UUIDFromBytes(dto.PlanID[:])
	if err != nil {
		return nil, err
	}

	return subscription.RestoreRequest(
		id,
		buyerID,
		kitchenID,
		planID,
		subscription.Status(dto.Status),
		dto.MonthlyPrice,
		dto.DeliveryWindow,
		dto.ConfirmedAt,
		dto.CancelledAt,
		dto.CancellationReason,
		dto.CreatedAt,
		dto.Version,
	)
}
