package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// SetDriverAvailabilityCommandHandler handles availability flips. The driver
// themself, their managing restaurant, or an admin may flip it; the
// aggregate rejects going available while not approved.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
	policy     services.AccessPolicy
}

// NewSetDriverAvailabilityCommandHandler creates a handler for availability
// changes.
func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the availability command.
func (h *SetDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetDriverAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	aggregate, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if err = h.policy.CanSetDriverAvailability(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = aggregate.SetAvailability(cmd.Available()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
