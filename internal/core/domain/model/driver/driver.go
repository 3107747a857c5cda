package driver

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// defaultMaxDeliveryDistanceKm is the delivery-distance preference applied to
// newly registered drivers until they change it.
const defaultMaxDeliveryDistanceKm = 10.0

// Domain errors for driver operations.
var (
	// ErrLicensePlateIsRequired is returned when registering a driver without a license plate.
	ErrLicensePlateIsRequired = errs.NewValueIsRequiredError("license plate")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver is the aggregate root for a delivery driver's registration,
// availability, position, and cached performance aggregates.
//
// Invariants:
//   - A driver can only be available while approved; rejecting or suspending
//     a driver forces availability off.
//   - Position is optional until the driver first reports one; a driver
//     without a position is never eligible for assignment.
//   - Rating aggregates hold the arithmetic mean and count of all overall
//     ratings received.
//
// A driver managed by a restaurant carries that restaurant's id; a driver
// with no managing restaurant is independent and administered by admins only.
type Driver struct {
	id                    kernel.UUID
	vehicleType           VehicleType
	licensePlate          string
	status                Status
	isAvailable           bool
	position              *kernel.GeoPoint
	positionUpdatedAt     *time.Time
	averageRating         float64
	totalRatings          int
	totalDeliveries       int
	totalEarnings         kernel.Money
	totalTips             kernel.Money
	managedByRestaurantID *kernel.UUID
	maxDeliveryDistanceKm float64

	guard guard.ConstructorGuard
}

// NewDriver registers a new driver. The driver starts pending, unavailable,
// without a position, and with zeroed aggregates. managedByRestaurantID is
// nil for independent drivers.
func NewDriver(
	id kernel.UUID,
	vehicleType VehicleType,
	licensePlate string,
	managedByRestaurantID *kernel.UUID,
) (*Driver, error) {
	d := &Driver{
		status:                StatusPending,
		maxDeliveryDistanceKm: defaultMaxDeliveryDistanceKm,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setVehicleType(vehicleType),
		d.setLicensePlate(licensePlate),
		d.setManagedByRestaurantID(managedByRestaurantID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// including availability, position, and cached aggregates. The restored
// driver behaves identically to one built up through domain operations.
func RestoreDriver(
	id kernel.UUID,
	vehicleType VehicleType,
	licensePlate string,
	status Status,
	isAvailable bool,
	position *kernel.GeoPoint,
	positionUpdatedAt *time.Time,
	averageRating float64,
	totalRatings int,
	totalDeliveries int,
	totalEarnings kernel.Money,
	totalTips kernel.Money,
	managedByRestaurantID *kernel.UUID,
	maxDeliveryDistanceKm float64,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setVehicleType(vehicleType),
		d.setLicensePlate(licensePlate),
		d.setStatus(status),
		d.setManagedByRestaurantID(managedByRestaurantID),
	); err != nil {
		return nil, err
	}

	if position != nil {
		if err := position.Validate(); err != nil {
			return nil, err
		}
	}

	if isAvailable && status != StatusApproved {
		return nil, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%s driver cannot be available", status))
	}

	d.isAvailable = isAvailable
	d.position = position
	d.positionUpdatedAt = positionUpdatedAt
	d.averageRating = averageRating
	d.totalRatings = totalRatings
	d.totalDeliveries = totalDeliveries
	d.totalEarnings = totalEarnings
	d.totalTips = totalTips
	d.maxDeliveryDistanceKm = maxDeliveryDistanceKm

	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// VehicleType returns the driver's vehicle kind.
func (d *Driver) VehicleType() VehicleType {
	return d.vehicleType
}

// LicensePlate returns the registered license plate.
func (d *Driver) LicensePlate() string {
	return d.licensePlate
}

// Status returns the driver's registration status.
func (d *Driver) Status() Status {
	return d.status
}

// IsAvailable reports whether the driver is accepting assignments.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// Position returns the driver's last reported position, or nil if the driver
// has never reported one.
func (d *Driver) Position() *kernel.GeoPoint {
	return d.position
}

// PositionUpdatedAt returns when the position was last reported.
func (d *Driver) PositionUpdatedAt() *time.Time {
	return d.positionUpdatedAt
}

// AverageRating returns the cached arithmetic mean of all overall ratings.
func (d *Driver) AverageRating() float64 {
	return d.averageRating
}

// TotalRatings returns how many ratings the driver has received.
func (d *Driver) TotalRatings() int {
	return d.totalRatings
}

// TotalDeliveries returns how many orders the driver has delivered.
func (d *Driver) TotalDeliveries() int {
	return d.totalDeliveries
}

// TotalEarnings returns the driver's accumulated delivery earnings.
func (d *Driver) TotalEarnings() kernel.Money {
	return d.totalEarnings
}

// TotalTips returns the driver's accumulated tips.
func (d *Driver) TotalTips() kernel.Money {
	return d.totalTips
}

// ManagedByRestaurantID returns the managing restaurant's id, or nil for an
// independent driver.
func (d *Driver) ManagedByRestaurantID() *kernel.UUID {
	return d.managedByRestaurantID
}

// IsIndependent reports whether the driver has no managing restaurant.
func (d *Driver) IsIndependent() bool {
	return d.managedByRestaurantID == nil
}

// MaxDeliveryDistanceKm returns the driver's delivery-distance preference.
func (d *Driver) MaxDeliveryDistanceKm() float64 {
	return d.maxDeliveryDistanceKm
}

// SetAvailability flips the availability flag. Going available requires the
// driver to be approved; going unavailable is always allowed.
func (d *Driver) SetAvailability(available bool) error {
	if available && d.status != StatusApproved {
		return errs.NewInvalidStateTransitionError("driver", d.status.String(), "available")
	}

	d.isAvailable = available
	return nil
}

// UpdatePosition records the driver's current position and its timestamp.
func (d *Driver) UpdatePosition(position kernel.GeoPoint, at time.Time) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.position = &position
	d.positionUpdatedAt = &at
	return nil
}

// Approve transitions the driver from pending to approved.
func (d *Driver) Approve() error {
	newStatus, err := d.status.Approve()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Reject transitions the driver from pending to rejected.
func (d *Driver) Reject() error {
	newStatus, err := d.status.Reject()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Suspend transitions the driver from approved to suspended and forces
// availability off.
func (d *Driver) Suspend() error {
	newStatus, err := d.status.Suspend()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.isAvailable = false
	return nil
}

// Reserve marks the driver as claimed for an assignment. Mirrors the
// conditional claim performed in storage; callers must only invoke it for
// an available, approved driver.
func (d *Driver) Reserve() error {
	if !d.isAvailable || d.status != StatusApproved {
		return errs.NewInvalidStateTransitionError("driver", d.status.String(), "reserved")
	}

	d.isAvailable = false
	return nil
}

// RegisterRating folds a new overall rating and tip into the cached
// aggregates: the average stays the arithmetic mean of all ratings received.
func (d *Driver) RegisterRating(overall int, tip kernel.Money) error {
	if overall < 1 || overall > 5 {
		return errs.NewValueIsOutOfRangeError("overall rating", overall, 1, 5)
	}

	total := d.averageRating*float64(d.totalRatings) + float64(overall)
	d.totalRatings++
	d.averageRating = total / float64(d.totalRatings)
	d.totalTips = d.totalTips.Add(tip)
	return nil
}

// CompleteDelivery credits a finished delivery: bumps the delivery counter,
// adds the delivery fee to earnings, and puts an approved driver back into
// the available pool.
func (d *Driver) CompleteDelivery(earnings kernel.Money) {
	d.totalDeliveries++
	d.totalEarnings = d.totalEarnings.Add(earnings)
	if d.status == StatusApproved {
		d.isAvailable = true
	}
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	d.vehicleType = vehicleType
	return nil
}

func (d *Driver) setLicensePlate(licensePlate string) error {
	if licensePlate == "" {
		return ErrLicensePlateIsRequired
	}
	d.licensePlate = licensePlate
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Driver) setManagedByRestaurantID(id *kernel.UUID) error {
	if id != nil {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	d.managedByRestaurantID = id
	return nil
}
