package commands

import (
	"context"

	"marketplace/internal/core/domain/services"
)

// ChangeDriverStatusCommandHandler handles review decisions on driver
// registrations. Only admins and the managing restaurant may decide; the
// aggregate enforces which transitions are legal.
type ChangeDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
	policy     services.AccessPolicy
}

// NewChangeDriverStatusCommandHandler creates a handler for driver status
// changes.
func NewChangeDriverStatusCommandHandler(uowFactory DriverUoWFactory) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the status change command.
func (h *ChangeDriverStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDriverStatusCommand) error {
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

	if err = h.policy.CanManageDriver(cmd.Actor(), aggregate); err != nil {
		return err
	}

	switch cmd.Action() {
	case ActionApprove:
		err = aggregate.Approve()
	case ActionReject:
		err = aggregate.Reject()
	case ActionSuspend:
		err = aggregate.Suspend()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
