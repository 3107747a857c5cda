package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler moves an order one step along the happy
// path and carries out the step's side effects: the initial delivery
// estimate on confirmation, the pickup and delivery milestones on the
// tracking record, and the driver's earnings on delivery.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.RestaurantDirectory
	notifier   ports.Notifier
	policy     services.AccessPolicy
}

// NewAdvanceOrderStatusCommandHandler creates a handler for order status
// advancement.
func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	directory ports.RestaurantDirectory,
	notifier ports.Notifier,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the advancement command. All writes share one
// transaction; the ready-for-pickup event is published only after commit.
func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.CanAdvanceOrder(cmd.Actor(), aggregate); err != nil {
		return err
	}

	if err = aggregate.Advance(now); err != nil {
		return err
	}

	switch aggregate.Status() {
	case order.StatusConfirmed:
		if err = h.setInitialEstimate(ctx, aggregate, now); err != nil {
			return err
		}
	case order.StatusPickedUp:
		if err = h.markPickedUp(ctx, uow, aggregate, now); err != nil {
			return err
		}
	case order.StatusDelivered:
		if err = h.completeDelivery(ctx, uow, aggregate, now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// The event alerts the assigned driver; without one there is nobody to
	// tell and the assignment scan will pick the order up.
	if aggregate.Status() == order.StatusReady && aggregate.DriverID() != nil {
		_ = h.notifier.Publish(ctx, ports.OrderEvent{
			Kind:         ports.EventReadyForPickup,
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.OrderNumber(),
			CustomerID:   aggregate.CustomerID(),
			RestaurantID: aggregate.RestaurantID(),
			DriverID:     aggregate.DriverID(),
		})
	}

	return nil
}

// setInitialEstimate stamps the first delivery estimate when the restaurant
// confirms: preparation time plus travel from the restaurant to the
// destination at the assumed speed.
func (h *AdvanceOrderStatusCommandHandler) setInitialEstimate(ctx context.Context, aggregate *order.Order, now time.Time) error {
	restaurant, err := h.directory.GetRestaurant(ctx, aggregate.RestaurantID())
	if err != nil {
		return err
	}

	distance, err := restaurant.Location.DistanceKm(aggregate.DeliveryLocation())
	if err != nil {
		return err
	}

	aggregate.SetEstimatedDeliveryTime(now.Add(tracking.PreparationTime + tracking.TravelTime(distance)))
	return nil
}

func (h *AdvanceOrderStatusCommandHandler) markPickedUp(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
	trackingRepo := uow.TrackingRepository()
	record, err := trackingRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if err = record.MarkPickedUp(now); err != nil {
		return err
	}

	return trackingRepo.Update(ctx, record)
}

// completeDelivery closes the tracking record and credits the driver: the
// delivery counter, the delivery fee as earnings, and renewed availability.
func (h *AdvanceOrderStatusCommandHandler) completeDelivery(ctx context.Context, uow UoW, aggregate *order.Order, now time.Time) error {
	trackingRepo := uow.TrackingRepository()
	record, err := trackingRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	if err = record.MarkDelivered(now); err != nil {
		return err
	}

	if err = trackingRepo.Update(ctx, record); err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	drv, err := driverRepo.Get(ctx, *aggregate.DriverID())
	if err != nil {
		return err
	}

	drv.CompleteDelivery(aggregate.DeliveryFee())
	return driverRepo.Update(ctx, drv)
}
