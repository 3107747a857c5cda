package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetAvailableDriversQueryIsNotConstructed = errors.New(
		"GetAvailableDriversQuery must be created via NewGetAvailableDriversQuery constructor",
	)
)

// GetAvailableDriversQuery lists approved, available drivers near a point,
// nearest first. Drivers outside the radius or without a known position are
// omitted.
type GetAvailableDriversQuery struct {
	origin   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewGetAvailableDriversQuery creates a query for available drivers around
// origin. A non-positive radius falls back to the default assignment radius.
func NewGetAvailableDriversQuery(origin kernel.GeoPoint, radiusKm float64) (GetAvailableDriversQuery, error) {
	if err := origin.Validate(); err != nil {
		return GetAvailableDriversQuery{}, err
	}
	if radiusKm <= 0 {
		radiusKm = services.DefaultAssignmentRadiusKm
	}

	return GetAvailableDriversQuery{
		origin:   origin,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDriversQuery) Validate() error {
	if err := q.guard.Validate(ErrGetAvailableDriversQueryIsNotConstructed); err != nil {
		return err
	}
	if q.radiusKm <= 0 {
		return errs.NewValueIsInvalidError("radiusKm")
	}
	return nil
}

// Origin returns the point drivers are searched around.
func (q GetAvailableDriversQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// RadiusKm returns the search radius in kilometers.
func (q GetAvailableDriversQuery) RadiusKm() float64 {
	return q.radiusKm
}

// GetAvailableDriversQueryResponse is one nearby driver.
type GetAvailableDriversQueryResponse struct {
	ID            kernel.UUID
	VehicleType   string
	Position      kernel.GeoPoint
	DistanceKm    float64
	AverageRating float64
}
