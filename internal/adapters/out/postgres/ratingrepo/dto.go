// Package ratingrepo provides data transfer objects and mapping functions
// for driver rating persistence. The order id is the primary key, which
// makes the one-rating-per-order rule a database constraint rather than an
// application-level check.
package ratingrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// DriverRatingDTO represents the database structure for persisting driver
// ratings.
type DriverRatingDTO struct {
	OrderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null"`
	Overall         int       `gorm:"not null"`
	Punctuality     *int
	Professionalism *int
	FoodCondition   *int
	Comment         string    `gorm:"type:text"`
	Tip             int64     `gorm:"not null;default:0"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the database table name for rating entities.
func (DriverRatingDTO) TableName() string {
	return "driver_ratings"
}

// fromDomain converts a rating domain aggregate to its database
// representation.
func fromDomain(r *rating.DriverRating) DriverRatingDTO {
	return DriverRatingDTO{
		OrderID:         r.OrderID().Bytes(),
		DriverID:        r.DriverID().Bytes(),
		CustomerID:      r.CustomerID().Bytes(),
		Overall:         r.Overall(),
		Punctuality:     r.Punctuality(),
		Professionalism: r.Professionalism(),
		FoodCondition:   r.FoodCondition(),
		Comment:         r.Comment(),
		Tip:             r.Tip().Cents(),
		CreatedAt:       r.CreatedAt(),
	}
}

// toDomain converts a database DTO to a rating domain aggregate using
// RestoreDriverRating.
func toDomain(dto DriverRatingDTO) (*rating.DriverRating, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	tip, err := kernel.NewMoney(dto.Tip)
	if err != nil {
		return nil, err
	}

	return rating.RestoreDriverRating(
		orderID,
		driverID,
		customerID,
		dto.Overall,
		dto.Punctuality,
		dto.Professionalism,
		dto.FoodCondition,
		dto.Comment,
		tip,
		dto.CreatedAt,
	)
}
