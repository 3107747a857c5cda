package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand represents a request to register a new driver,
// either independent or managed by a restaurant.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID              kernel.UUID
	vehicleType           driver.VehicleType
	licensePlate          string
	managedByRestaurantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register a driver.
// managedByRestaurantID is nil for independent drivers.
func NewRegisterDriverCommand(
	driverID kernel.UUID,
	vehicleType driver.VehicleType,
	licensePlate string,
	managedByRestaurantID *kernel.UUID,
) (RegisterDriverCommand, error) {
	cmd := RegisterDriverCommand{
		managedByRestaurantID: managedByRestaurantID,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setVehicleType(vehicleType),
		cmd.setLicensePlate(licensePlate),
		cmd.validateManagedBy(managedByRestaurantID),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the id the new driver will carry.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleType returns the driver's vehicle kind.
func (c RegisterDriverCommand) VehicleType() driver.VehicleType {
	return c.vehicleType
}

// LicensePlate returns the registered license plate.
func (c RegisterDriverCommand) LicensePlate() string {
	return c.licensePlate
}

// ManagedByRestaurantID returns the managing restaurant, or nil for an
// independent driver.
func (c RegisterDriverCommand) ManagedByRestaurantID() *kernel.UUID {
	return c.managedByRestaurantID
}

func (c *RegisterDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *RegisterDriverCommand) setVehicleType(vehicleType driver.VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	c.vehicleType = vehicleType
	return nil
}

func (c *RegisterDriverCommand) setLicensePlate(licensePlate string) error {
	if licensePlate == "" {
		return errs.NewValueIsRequiredError("license plate")
	}
	c.licensePlate = licensePlate
	return nil
}

func (c *RegisterDriverCommand) validateManagedBy(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	return id.Validate()
}
