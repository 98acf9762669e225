// Package planrepo provides data transfer objects and mapping functions for
// subscription plan persistence.
package planrepo

import (
	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"

	"github.com/google/uuid"
)

// PlanDTO represents the database structure for persisting subscription plans.
// SubscriberCount and MonthlyRevenue are maintained transactionally by the
// approval flow and always reflect the set of active subscriptions.
type PlanDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	KitchenID       uuid.UUID `gorm:"type:uuid;index"`
	Name            string
	MonthlyPrice    int64
	SubscriberCount int
	MonthlyRevenue  int64
	Version         int64
}

// TableName specifies the database table name for subscription plans.
func (PlanDTO) TableName() string {
	return "subscription_plans"
}

// fromDomain converts a plan aggregate to its database representation.
func fromDomain(plan *subscription.Plan) PlanDTO {
	return PlanDTO{
		ID:              plan.ID().Bytes(),
		KitchenID:       plan.KitchenID().Bytes(),
		Name:            plan.Name(),
		MonthlyPrice:    plan.MonthlyPrice(),
		SubscriberCount: plan.SubscriberCount(),
		MonthlyRevenue:  plan.MonthlyRevenue(),
		Version:         plan.Version(),
	}
}

// toDomain converts a database DTO to a plan aggregate using RestorePlan.
func toDomain(dto PlanDTO) (*subscription.Plan, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	kitchenID, err := kernel.UUIDFromBytes(dto.KitchenID[:])
	if err != nil {
		return nil, err
	}

	return subscription.RestorePlan(
		id,
		kitchenID,
		dto.Name,
		dto.MonthlyPrice,
		dto.SubscriberCount,
		dto.MonthlyRevenue,
		dto.Version,
	)
}
