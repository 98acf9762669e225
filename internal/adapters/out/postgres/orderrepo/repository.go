package orderrepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/order"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order's mutable columns with an optimistic
// concurrency check. Line items never change after checkout and are not
// rewritten. A version mismatch surfaces as errs.ErrVersionIsInvalid.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":  dto.Status,
			"notes":   dto.Notes,
			"version": dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("order", nil)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetForBuyer retrieves an order by ID scoped to the owning buyer.
// An order held by another buyer is reported as not found.
func (r *GormOrderRepository) GetForBuyer(
	ctx context.Context, id kernel.UUID, buyerID kernel.UUID,
) (*order.Order, error) {
	return r.get(ctx, id, "buyer_id", buyerID)
}

// GetForKitchen retrieves an order by ID scoped to the owning kitchen.
// An order held by another kitchen is reported as not found.
func (r *GormOrderRepository) GetForKitchen(
	ctx context.Context, id kernel.UUID, kitchenID kernel.UUID,
) (*order.Order, error) {
	return r.get(ctx, id, "kitchen_id", kitchenID)
}

func (r *GormOrderRepository) get(
	ctx context.Context, id kernel.UUID, ownerColumn string, ownerID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		First(&dto, "id = ? AND "+ownerColumn+" = ?", id.Bytes(), ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
