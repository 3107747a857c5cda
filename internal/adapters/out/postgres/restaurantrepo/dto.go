// Package restaurantrepo backs the restaurant directory and menu catalog
// reads. Restaurant management lives outside this core, so the package only
// reads snapshots; the DTOs exist for migrations and test seeding.
package restaurantrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurant rows.
type RestaurantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	DeliveryFee int64     `gorm:"not null;default:0"`
	IsOpen      bool      `gorm:"not null;default:false"`
}

// TableName specifies the database table name for restaurant rows.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO represents the database structure for menu item rows.
type MenuItemDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Price        int64     `gorm:"not null"`
	IsAvailable  bool      `gorm:"not null;default:true"`
}

// TableName specifies the database table name for menu item rows.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// toSnapshot converts a restaurant row to its read model.
func toSnapshot(dto RestaurantDTO) (ports.RestaurantSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return ports.RestaurantSnapshot{}, err
	}

	return ports.RestaurantSnapshot{
		ID:          id,
		Name:        dto.Name,
		Location:    location,
		DeliveryFee: fee,
		IsOpen:      dto.IsOpen,
	}, nil
}

// menuItemToSnapshot converts a menu item row to its read model.
func menuItemToSnapshot(dto MenuItemDTO) (ports.MenuItemSnapshot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.MenuItemSnapshot{}, err
	}

	return ports.MenuItemSnapshot{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        price,
		IsAvailable:  dto.IsAvailable,
	}, nil
}
