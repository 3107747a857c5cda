package commands

import (
	"context"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
)

// CancelOrderCommandHandler handles order cancellation. The access policy
// decides who may cancel; the aggregate decides whether the order's status
// still allows it. When a driver was already claimed for the order, the same
// transaction puts them back on shift and removes the delivery tracking
// record, so later position reports no longer touch the dead delivery.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.CanCancelOrder(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if aggregate.DriverID() != nil {
		if err = h.releaseDriver(ctx, uow, *aggregate.DriverID()); err != nil {
			return err
		}
		if err = uow.TrackingRepository().Delete(ctx, aggregate.ID()); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// releaseDriver puts the claimed driver back on shift when the order is
// cancelled out from under them. A driver suspended while claimed stays off
// shift, as after a completed delivery.
func (h *CancelOrderCommandHandler) releaseDriver(ctx context.Context, uow UoW, driverID kernel.UUID) error {
	driverRepo := uow.DriverRepository()
	drv, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		return err
	}

	if drv.Status() != driver.StatusApproved {
		return nil
	}

	if err = drv.SetAvailability(true); err != nil {
		return err
	}

	return driverRepo.Update(ctx, drv)
}
