package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
)

// UpdateDriverPositionCommandHandler handles driver position reports. Every
// report updates the driver's stored position and fans out to the driver's
// active deliveries: each tracking record recomputes its remaining distance
// and arrival estimate, and the estimate is mirrored onto the order.
type UpdateDriverPositionCommandHandler struct {
	uowFactory UoWFactory
	policy     services.AccessPolicy
}

// NewUpdateDriverPositionCommandHandler creates a handler for position
// reports.
func NewUpdateDriverPositionCommandHandler(uowFactory UoWFactory) UpdateDriverPositionCommandHandler {
	return UpdateDriverPositionCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the position report.
func (h *UpdateDriverPositionCommandHandler) Handle(ctx context.Context, cmd UpdateDriverPositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

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

	if err = h.policy.CanActAsDriver(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = aggregate.UpdatePosition(cmd.Position(), now); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	trackingRepo := uow.TrackingRepository()
	orderRepo := uow.OrderRepository()

	active, err := trackingRepo.GetActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	for _, record := range active {
		if err = record.RecordPosition(cmd.Position(), now); err != nil {
			return err
		}

		if err = trackingRepo.Update(ctx, record); err != nil {
			return err
		}

		trackedOrder, orderErr := orderRepo.Get(ctx, record.OrderID())
		if orderErr != nil {
			return orderErr
		}

		trackedOrder.SetEstimatedDeliveryTime(*record.EstimatedArrival())
		if err = orderRepo.Update(ctx, trackedOrder); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
