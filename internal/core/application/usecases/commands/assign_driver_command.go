package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a request to find a driver for an order.
// Without a target order it assigns the oldest order awaiting a driver; the
// re-scan job issues it that way on a schedule.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command that assigns a driver to the
// oldest order still awaiting one.
func NewAssignDriverCommand() AssignDriverCommand {
	return AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// NewAssignDriverCommandForOrder creates a command that assigns a driver to
// one specific order.
func NewAssignDriverCommandForOrder(orderID kernel.UUID) (AssignDriverCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		orderID: &orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the targeted order, or nil for the oldest awaiting one.
func (c AssignDriverCommand) OrderID() *kernel.UUID {
	return c.orderID
}
