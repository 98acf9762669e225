package planrepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM.
type GormPlanRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPlanRepository creates a new GORM plan repository.
func NewGormPlanRepository(db *gorm.DB, tracker aggregateTracker) *GormPlanRepository {
	return &GormPlanRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new plan to the database.
func (r *GormPlanRepository) Add(ctx context.Context, plan *subscription.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	dto := fromDomain(plan)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(plan.ID(), plan)
	return nil
}

// Update saves an existing plan with an optimistic concurrency check, so
// two concurrent approvals cannot both credit the same counters.
func (r *GormPlanRepository) Update(ctx context.Context, plan *subscription.Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	dto := fromDomain(plan)
	result := r.db.WithContext(ctx).Model(&PlanDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":             dto.Name,
			"monthly_price":    dto.MonthlyPrice,
			"subscriber_count": dto.SubscriberCount,
			"monthly_revenue":  dto.MonthlyRevenue,
			"version":          dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("subscription plan", nil)
	}

	r.tracker.TrackAggregate(plan.ID(), plan)
	return nil
}

// Get retrieves a plan by ID.
func (r *GormPlanRepository) Get(ctx context.Context, id kernel.UUID) (*subscription.Plan, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PlanDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription plan", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
