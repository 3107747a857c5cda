package tracking

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// averageSpeedKmh is the assumed driver travel speed used for arrival
	// estimates. Crude, but stable enough for customer-facing ETAs.
	averageSpeedKmh = 30.0

	// PreparationTime is the kitchen-time buffer added to the initial
	// delivery estimate when an order is confirmed.
	PreparationTime = 20 * time.Minute
)

// ErrTrackingIsNotConstructed is returned when using an improperly initialized DeliveryTracking.
var ErrTrackingIsNotConstructed = errors.New("DeliveryTracking must be created via NewDeliveryTracking constructor")

// TravelTime estimates how long covering distanceKm takes at the assumed
// average speed.
func TravelTime(distanceKm float64) time.Duration {
	return time.Duration(distanceKm / averageSpeedKmh * float64(time.Hour))
}

// DeliveryTracking is the aggregate root for the live delivery of one order.
// Its identity is the order id: an order has at most one tracking record,
// created when a driver is assigned.
//
// Every position report recomputes the remaining distance to the delivery
// destination and the estimated arrival from it, so the ETA tightens as the
// driver closes in.
type DeliveryTracking struct {
	orderID             kernel.UUID
	driverID            kernel.UUID
	destination         kernel.GeoPoint
	position            *kernel.GeoPoint
	lastUpdate          *time.Time
	remainingDistanceKm float64
	estimatedArrival    *time.Time
	pickedUpAt          *time.Time
	deliveredAt         *time.Time

	guard guard.ConstructorGuard
}

// NewDeliveryTracking starts tracking the delivery of an order by a driver.
// The record starts without a position; remaining distance and arrival
// estimate appear with the first position report.
func NewDeliveryTracking(orderID, driverID kernel.UUID, destination kernel.GeoPoint) (*DeliveryTracking, error) {
	tr := &DeliveryTracking{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tr.setOrderID(orderID),
		tr.setDriverID(driverID),
		tr.setDestination(destination),
	); err != nil {
		return nil, err
	}

	return tr, nil
}

// RestoreDeliveryTracking reconstructs a DeliveryTracking aggregate from
// persistent storage.
func RestoreDeliveryTracking(
	orderID, driverID kernel.UUID,
	destination kernel.GeoPoint,
	position *kernel.GeoPoint,
	lastUpdate *time.Time,
	remainingDistanceKm float64,
	estimatedArrival *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*DeliveryTracking, error) {
	tr := &DeliveryTracking{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tr.setOrderID(orderID),
		tr.setDriverID(driverID),
		tr.setDestination(destination),
	); err != nil {
		return nil, err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
	}

	tr.position = position
	tr.lastUpdate = lastUpdate
	tr.remainingDistanceKm = remainingDistanceKm
	tr.estimatedArrival = estimatedArrival
	tr.pickedUpAt = pickedUpAt
	tr.deliveredAt = deliveredAt

	return tr, nil
}

// Validate ensures the DeliveryTracking was created through a constructor.
func (t *DeliveryTracking) Validate() error {
	if t == nil {
		return ErrTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

// OrderID returns the tracked order's id, which is the aggregate's identity.
func (t *DeliveryTracking) OrderID() kernel.UUID {
	return t.orderID
}

// DriverID returns the delivering driver's id.
func (t *DeliveryTracking) DriverID() kernel.UUID {
	return t.driverID
}

// Destination returns the delivery destination coordinates.
func (t *DeliveryTracking) Destination() kernel.GeoPoint {
	return t.destination
}

// Position returns the driver's last reported position, or nil before the
// first report.
func (t *DeliveryTracking) Position() *kernel.GeoPoint {
	return t.position
}

// LastUpdate returns when the position was last reported.
func (t *DeliveryTracking) LastUpdate() *time.Time {
	return t.lastUpdate
}

// RemainingDistanceKm returns the distance from the last reported position
// to the destination, or 0 before the first report.
func (t *DeliveryTracking) RemainingDistanceKm() float64 {
	return t.remainingDistanceKm
}

// EstimatedArrival returns the current arrival estimate, or nil before the
// first position report.
func (t *DeliveryTracking) EstimatedArrival() *time.Time {
	return t.estimatedArrival
}

// PickedUpAt returns when the driver collected the order, or nil until then.
func (t *DeliveryTracking) PickedUpAt() *time.Time {
	return t.pickedUpAt
}

// DeliveredAt returns when the order was delivered, or nil until then.
func (t *DeliveryTracking) DeliveredAt() *time.Time {
	return t.deliveredAt
}

// IsCompleted reports whether the delivery finished.
func (t *DeliveryTracking) IsCompleted() bool {
	return t.deliveredAt != nil
}

// RecordPosition folds a driver position report into the record: it stores
// the position, recomputes the remaining distance to the destination, and
// re-estimates the arrival time from it.
func (t *DeliveryTracking) RecordPosition(position kernel.GeoPoint, at time.Time) error {
	if t.IsCompleted() {
		return errs.NewInvalidStateTransitionError("delivery tracking", "delivered", "position update")
	}

	remaining, err := position.DistanceKm(t.destination)
	if err != nil {
		return err
	}

	eta := at.Add(TravelTime(remaining))

	t.position = &position
	t.lastUpdate = &at
	t.remainingDistanceKm = remaining
	t.estimatedArrival = &eta
	return nil
}

// MarkPickedUp stamps when the driver collected the order.
func (t *DeliveryTracking) MarkPickedUp(at time.Time) error {
	if t.pickedUpAt != nil {
		return errs.NewInvalidStateTransitionError("delivery tracking", "picked_up", "picked_up")
	}

	t.pickedUpAt = &at
	return nil
}

// MarkDelivered completes the delivery. The remaining distance drops to zero
// and further position reports are rejected.
func (t *DeliveryTracking) MarkDelivered(at time.Time) error {
	if t.IsCompleted() {
		return errs.NewInvalidStateTransitionError("delivery tracking", "delivered", "delivered")
	}

	t.deliveredAt = &at
	t.remainingDistanceKm = 0
	t.estimatedArrival = &at
	return nil
}

func (t *DeliveryTracking) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *DeliveryTracking) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.driverID = id
	return nil
}

func (t *DeliveryTracking) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	t.destination = destination
	return nil
}
