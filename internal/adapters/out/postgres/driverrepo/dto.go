// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. It implements the repository pattern for the driver
// aggregate, including the conditional claim used by the assignment engine
// and the atomic rating fold.
package driverrepo

import (
	"time"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. Availability and status are indexed because the assignment
// engine scans on them.
type DriverDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleType           string    `gorm:"type:varchar(32);not null"`
	LicensePlate          string    `gorm:"type:varchar(32);not null"`
	Status                string    `gorm:"type:varchar(32);not null;index"`
	IsAvailable           bool      `gorm:"not null;index"`
	Latitude              *float64
	Longitude             *float64
	PositionUpdatedAt     *time.Time
	AverageRating         float64    `gorm:"not null;default:0"`
	TotalRatings          int        `gorm:"not null;default:0"`
	TotalDeliveries       int        `gorm:"not null;default:0"`
	TotalEarnings         int64      `gorm:"not null;default:0"`
	TotalTips             int64      `gorm:"not null;default:0"`
	ManagedByRestaurantID *uuid.UUID `gorm:"type:uuid;index"`
	MaxDeliveryDistanceKm float64    `gorm:"not null"`
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database
// representation.
func fromDomain(d *driver.Driver) DriverDTO {
	var latitude, longitude *float64
	if position := d.Position(); position != nil {
		lat, lng := position.Latitude(), position.Longitude()
		latitude, longitude = &lat, &lng
	}

	var managedBy *uuid.UUID
	if id := d.ManagedByRestaurantID(); id != nil {
		raw := id.Bytes()
		managedBy = &raw
	}

	return DriverDTO{
		ID:                    d.ID().Bytes(),
		VehicleType:           d.VehicleType().String(),
		LicensePlate:          d.LicensePlate(),
		Status:                d.Status().String(),
		IsAvailable:           d.IsAvailable(),
		Latitude:              latitude,
		Longitude:             longitude,
		PositionUpdatedAt:     d.PositionUpdatedAt(),
		AverageRating:         d.AverageRating(),
		TotalRatings:          d.TotalRatings(),
		TotalDeliveries:       d.TotalDeliveries(),
		TotalEarnings:         d.TotalEarnings().Cents(),
		TotalTips:             d.TotalTips().Cents(),
		ManagedByRestaurantID: managedBy,
		MaxDeliveryDistanceKm: d.MaxDeliveryDistanceKm(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate using
// RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		position = &point
	}

	earnings, err := kernel.NewMoney(dto.TotalEarnings)
	if err != nil {
		return nil, err
	}
	tips, err := kernel.NewMoney(dto.TotalTips)
	if err != nil {
		return nil, err
	}

	var managedBy *kernel.UUID
	if dto.ManagedByRestaurantID != nil {
		mID, mErr := kernel.UUIDFromBytes((*dto.ManagedByRestaurantID)[:])
		if mErr != nil {
			return nil, mErr
		}
		managedBy = &mID
	}

	return driver.RestoreDriver(
		id,
		driver.VehicleType(dto.VehicleType),
		dto.LicensePlate,
		status,
		dto.IsAvailable,
		position,
		dto.PositionUpdatedAt,
		dto.AverageRating,
		dto.TotalRatings,
		dto.TotalDeliveries,
		earnings,
		tips,
		managedBy,
		dto.MaxDeliveryDistanceKm,
	)
}
