// Package trackingrepo provides data transfer objects and mapping functions
// for delivery tracking persistence. A tracking row's identity is its order
// id: one order has at most one tracking record.
package trackingrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// DeliveryTrackingDTO represents the database structure for persisting
// delivery tracking records. The driver id is indexed for the position
// fan-out lookup.
type DeliveryTrackingDTO struct {
	OrderID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID             uuid.UUID `gorm:"type:uuid;not null;index"`
	DestinationLatitude  float64   `gorm:"not null"`
	DestinationLongitude float64   `gorm:"not null"`
	Latitude             *float64
	Longitude            *float64
	LastUpdate           *time.Time
	RemainingDistanceKm  float64 `gorm:"not null;default:0"`
	EstimatedArrival     *time.Time
	PickedUpAt           *time.Time
	DeliveredAt          *time.Time
}

// TableName specifies the database table name for tracking records.
func (DeliveryTrackingDTO) TableName() string {
	return "delivery_trackings"
}

// fromDomain converts a tracking domain aggregate to its database
// representation.
func fromDomain(t *tracking.DeliveryTracking) DeliveryTrackingDTO {
	var latitude, longitude *float64
	if position := t.Position(); position != nil {
		lat, lng := position.Latitude(), position.Longitude()
		latitude, longitude = &lat, &lng
	}

	return DeliveryTrackingDTO{
		OrderID:              t.OrderID().Bytes(),
		DriverID:             t.DriverID().Bytes(),
		DestinationLatitude:  t.Destination().Latitude(),
		DestinationLongitude: t.Destination().Longitude(),
		Latitude:             latitude,
		Longitude:            longitude,
		LastUpdate:           t.LastUpdate(),
		RemainingDistanceKm:  t.RemainingDistanceKm(),
		EstimatedArrival:     t.EstimatedArrival(),
		PickedUpAt:           t.PickedUpAt(),
		DeliveredAt:          t.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a tracking domain aggregate using
// RestoreDeliveryTracking.
func toDomain(dto DeliveryTrackingDTO) (*tracking.DeliveryTracking, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.DestinationLatitude, dto.DestinationLongitude)
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

	return tracking.RestoreDeliveryTracking(
		orderID,
		driverID,
		destination,
		position,
		dto.LastUpdate,
		dto.RemainingDistanceKm,
		dto.EstimatedArrival,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}
