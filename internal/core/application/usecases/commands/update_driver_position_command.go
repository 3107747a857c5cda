package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateDriverPositionCommandIsNotConstructed = errors.New(
	"UpdateDriverPositionCommand must be created via NewUpdateDriverPositionCommand constructor",
)

// UpdateDriverPositionCommand represents a driver's position report.
type UpdateDriverPositionCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	position kernel.GeoPoint
	actor    services.Actor

	guard guard.ConstructorGuard
}

// NewUpdateDriverPositionCommand creates a command carrying a position
// report.
func NewUpdateDriverPositionCommand(
	driverID kernel.UUID,
	position kernel.GeoPoint,
	actor services.Actor,
) (UpdateDriverPositionCommand, error) {
	cmd := UpdateDriverPositionCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setPosition(position),
		actor.Role.Validate(),
	); err != nil {
		return UpdateDriverPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverPositionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverPositionCommandIsNotConstructed)
}

// DriverID returns the reporting driver.
func (c UpdateDriverPositionCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Position returns the reported coordinates.
func (c UpdateDriverPositionCommand) Position() kernel.GeoPoint {
	return c.position
}

// Actor returns the principal reporting the position.
func (c UpdateDriverPositionCommand) Actor() services.Actor {
	return c.actor
}

func (c *UpdateDriverPositionCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *UpdateDriverPositionCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.position = position
	return nil
}
