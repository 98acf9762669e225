package georepo

import (
	"context"
	"errors"

	"mealmarket/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCoordinateResolver implements CoordinateResolver over the location
// tables. A party without a stored location resolves to nil rather than
// an error; the pricer turns that into an unavailable quote.
type GormCoordinateResolver struct {
	db *gorm.DB
}

// NewGormCoordinateResolver creates a resolver backed by GORM.
func NewGormCoordinateResolver(db *gorm.DB) *GormCoordinateResolver {
	return &GormCoordinateResolver{db: db}
}

// KitchenLocation returns the kitchen's stored coordinates, or nil when
// none are recorded.
func (r *GormCoordinateResolver) KitchenLocation(ctx context.Context, kitchenID kernel.UUID) (*kernel.GeoPoint, error) {
	if err := kitchenID.Validate(); err != nil {
		return nil, err
	}

	var dto KitchenLocationDTO
	err := r.db.WithContext(ctx).First(&dto, "kitchen_id = ?", kitchenID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return &point, nil
}

// BuyerLocation returns the buyer's stored coordinates, or nil when none
// are recorded.
func (r *GormCoordinateResolver) BuyerLocation(ctx context.Context, buyerID kernel.UUID) (*kernel.GeoPoint, error) {
	if err := buyerID.Validate(); err != nil {
		return nil, err
	}

	var dto BuyerLocationDTO
	err := r.db.WithContext(ctx).First(&dto, "buyer_id = ?", buyerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return &point, nil
}
