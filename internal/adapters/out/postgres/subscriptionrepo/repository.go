package subscriptionrepo

import (
	"context"
	"errors"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubscriptionRequestRepository implements SubscriptionRequestRepository using GORM.
type GormSubscriptionRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSubscriptionRequestRepository creates a new GORM subscription request repository.
func NewGormSubscriptionRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormSubscriptionRequestRepository {
	return &GormSubscriptionRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new subscription request to the database.
func (r *GormSubscriptionRequestRepository) Add(ctx context.Context, request *subscription.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// Update saves an existing request with an optimistic concurrency check.
// A version mismatch surfaces as errs.ErrVersionIsInvalid, which the
// expiry sweep relies on to yield to concurrent kitchen decisions.
func (r *GormSubscriptionRequestRepository) Update(ctx context.Context, request *subscription.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	result := r.db.WithContext(ctx).Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":              dto.Status,
			"confirmed_at":        dto.ConfirmedAt,
			"cancelled_at":        dto.CancelledAt,
			"cancellation_reason": dto.CancellationReason,
			"version":             dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("subscription request", nil)
	}

	r.tracker.TrackAggregate(request.ID(), request)
	return nil
}

// GetForKitchen retrieves a request by ID scoped to the owning kitchen.
// A request addressed to another kitchen is reported as not found.
func (r *GormSubscriptionRequestRepository) GetForKitchen(
	ctx context.Context, id kernel.UUID, kitchenID kernel.UUID,
) (*subscription.Request, error) {
	if err := errors.Join(id.Validate(), kitchenID.Validate()); err != nil {
		return nil, err
	}

	var dto RequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND kitchen_id = ?", id.Bytes(), kitchenID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("subscription request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingCreatedBefore retrieves all Pending requests created before the cutoff.
func (r *GormSubscriptionRequestRepository) GetPendingCreatedBefore(
	ctx context.Context, cutoff time.Time,
) ([]*subscription.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND created_at < ?", subscription.Pending, cutoff).Error
	if err != nil {
		return nil, err
	}

	requests := make([]*subscription.Request, 0, len(dtos))
	for _, dto := range dtos {
		request, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}
