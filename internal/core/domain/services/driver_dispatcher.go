package services

import (
	"errors"
	"sort"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
)

// DefaultAssignmentRadiusKm is the search radius around the restaurant used
// when looking for a driver to assign.
const DefaultAssignmentRadiusKm = 5.0

// ErrNoEligibleDriver is returned when no driver qualifies for an order.
// This occurs when no driver is simultaneously approved, available, within
// the search radius of the restaurant, and within their own delivery-distance
// preference.
var ErrNoEligibleDriver = errors.New("no eligible driver")

// DriverDispatcher is a domain service that selects the driver for an order
// based on proximity to the restaurant.
//
// Eligibility rules:
//   - The driver must be approved and available.
//   - The driver must have reported a position; a driver without one is
//     never considered.
//   - The distance from the driver to the restaurant must not exceed the
//     search radius, nor the driver's own delivery-distance preference.
//
// Among eligible drivers the nearest wins; exact distance ties are broken
// deterministically by the lower driver id, so concurrent dispatchers rank
// the same pool identically.
type DriverDispatcher struct {
	radiusKm float64
}

// NewDriverDispatcher creates a dispatcher with the default search radius.
func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{radiusKm: DefaultAssignmentRadiusKm}
}

// NewDriverDispatcherWithRadius creates a dispatcher with a custom search
// radius in kilometers.
func NewDriverDispatcherWithRadius(radiusKm float64) DriverDispatcher {
	return DriverDispatcher{radiusKm: radiusKm}
}

// RadiusKm returns the dispatcher's search radius.
func (d DriverDispatcher) RadiusKm() float64 {
	return d.radiusKm
}

type rankedDriver struct {
	driver     *driver.Driver
	distanceKm float64
}

// SelectDriver returns the best eligible driver for an order being prepared
// at restaurantLocation, or ErrNoEligibleDriver when none qualifies.
func (d DriverDispatcher) SelectDriver(restaurantLocation kernel.GeoPoint, drivers []*driver.Driver) (*driver.Driver, error) {
	ranked, err := d.RankEligibleDrivers(restaurantLocation, drivers)
	if err != nil {
		return nil, err
	}

	if len(ranked) == 0 {
		return nil, ErrNoEligibleDriver
	}

	return ranked[0], nil
}

// RankEligibleDrivers filters drivers down to those eligible for an order at
// restaurantLocation and orders them best-first. Callers that claim drivers
// concurrently walk the ranking and take the first claim that sticks.
func (d DriverDispatcher) RankEligibleDrivers(restaurantLocation kernel.GeoPoint, drivers []*driver.Driver) ([]*driver.Driver, error) {
	if err := restaurantLocation.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]rankedDriver, 0, len(drivers))
	for _, c := range drivers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.IsAvailable() || c.Status() != driver.StatusApproved || c.Position() == nil {
			continue
		}

		distance, err := c.Position().DistanceKm(restaurantLocation)
		if err != nil {
			return nil, err
		}

		limit := d.radiusKm
		if c.MaxDeliveryDistanceKm() < limit {
			limit = c.MaxDeliveryDistanceKm()
		}

		if distance > limit {
			continue
		}

		ranked = append(ranked, rankedDriver{driver: c, distanceKm: distance})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distanceKm != ranked[j].distanceKm {
			return ranked[i].distanceKm < ranked[j].distanceKm
		}
		return ranked[i].driver.ID().Less(ranked[j].driver.ID())
	})

	result := make([]*driver.Driver, len(ranked))
	for i, r := range ranked {
		result[i] = r.driver
	}
	return result, nil
}
