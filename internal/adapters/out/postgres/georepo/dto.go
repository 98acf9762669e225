// Package georepo resolves stored kitchen and buyer coordinates for
// delivery pricing.
package georepo

import (
	"github.com/google/uuid"
)

// KitchenLocationDTO represents a kitchen's stored pickup coordinates.
type KitchenLocationDTO struct {
	KitchenID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude  float64
	Longitude float64
}

// TableName specifies the database table name for kitchen locations.
func (KitchenLocationDTO) TableName() string {
	return "kitchen_locations"
}

// BuyerLocationDTO represents a buyer's stored delivery coordinates.
type BuyerLocationDTO struct {
	BuyerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Latitude  float64
	Longitude float64
}

// TableName specifies the database table name for buyer locations.
func (BuyerLocationDTO) TableName() string {
	return "buyer_locations"
}
