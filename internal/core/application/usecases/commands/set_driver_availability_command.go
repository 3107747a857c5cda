package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand represents a driver going on or off shift.
type SetDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	driverID  kernel.UUID
	available bool
	actor     services.Actor

	guard guard.ConstructorGuard
}

// NewSetDriverAvailabilityCommand creates a command to flip a driver's
// availability.
func NewSetDriverAvailabilityCommand(
	driverID kernel.UUID,
	available bool,
	actor services.Actor,
) (SetDriverAvailabilityCommand, error) {
	cmd := SetDriverAvailabilityCommand{
		available: available,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		actor.Role.Validate(),
	); err != nil {
		return SetDriverAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

// DriverID returns the driver whose availability changes.
func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Available reports the requested availability.
func (c SetDriverAvailabilityCommand) Available() bool {
	return c.available
}

// Actor returns the principal requesting the change.
func (c SetDriverAvailabilityCommand) Actor() services.Actor {
	return c.actor
}

func (c *SetDriverAvailabilityCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
