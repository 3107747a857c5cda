package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
	"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
)

// StatusAction names the review decisions on a driver's registration.
type StatusAction string

const (
	ActionApprove StatusAction = "approve"
	ActionReject  StatusAction = "reject"
	ActionSuspend StatusAction = "suspend"
)

// Validate checks if the StatusAction is one of the supported decisions.
func (a StatusAction) Validate() error {
	switch a {
	case ActionApprove, ActionReject, ActionSuspend:
		return nil
	default:
		return errs.NewValueIsInvalidError("status action")
	}
}

// ChangeDriverStatusCommand represents a review decision on a driver's
// registration: approval, rejection, or suspension.
type ChangeDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	action   StatusAction
	actor    services.Actor

	guard guard.ConstructorGuard
}

// NewChangeDriverStatusCommand creates a command to change a driver's status.
func NewChangeDriverStatusCommand(
	driverID kernel.UUID,
	action StatusAction,
	actor services.Actor,
) (ChangeDriverStatusCommand, error) {
	cmd := ChangeDriverStatusCommand{
		action: action,
		actor:  actor,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		action.Validate(),
		actor.Role.Validate(),
	); err != nil {
		return ChangeDriverStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

// DriverID returns the driver under review.
func (c ChangeDriverStatusCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Action returns the review decision.
func (c ChangeDriverStatusCommand) Action() StatusAction {
	return c.action
}

// Actor returns the principal making the decision.
func (c ChangeDriverStatusCommand) Actor() services.Actor {
	return c.actor
}

func (c *ChangeDriverStatusCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
