package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AssignDriverCommandHandler finds and attaches a driver to an order.
//
// Candidates are ranked by the dispatcher (nearest to the restaurant first)
// and claimed through the repository's conditional update, so two handlers
// racing for the same pool never attach the same driver to two orders: the
// loser's claim affects zero rows and the loop moves to the next candidate.
type AssignDriverCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.RestaurantDirectory
	notifier   ports.Notifier
	dispatcher services.DriverDispatcher
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory UoWFactory,
	directory ports.RestaurantDirectory,
	notifier ports.Notifier,
	dispatcher services.DriverDispatcher,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

// Handle processes the assignment command. For the scheduled untargeted form
// an empty backlog is a quiet no-op; for a targeted order every failure
// surfaces. When no candidate can be claimed the handler returns
// services.ErrNoEligibleDriver and the order stays in the backlog for the
// next scan.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	var aggregate *order.Order
	var err error
	if cmd.OrderID() != nil {
		aggregate, err = orderRepo.Get(ctx, *cmd.OrderID())
	} else {
		aggregate, err = orderRepo.GetFirstAwaitingAssignment(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
	}
	if err != nil {
		return err
	}

	if !aggregate.IsAwaitingAssignment() {
		return errs.NewInvalidStateTransitionError("order", aggregate.Status().String(), "driver assigned")
	}

	restaurant, err := h.directory.GetRestaurant(ctx, aggregate.RestaurantID())
	if err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	pool, err := driverRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	ranked, err := h.dispatcher.RankEligibleDrivers(restaurant.Location, pool)
	if err != nil {
		return err
	}

	for _, candidate := range ranked {
		claimed, claimErr := driverRepo.Claim(ctx, candidate.ID())
		if claimErr != nil {
			return claimErr
		}
		if !claimed {
			// Lost the race for this driver, try the next one.
			continue
		}

		if err = aggregate.AssignDriver(candidate.ID()); err != nil {
			return err
		}

		record, trackErr := tracking.NewDeliveryTracking(aggregate.ID(), candidate.ID(), aggregate.DeliveryLocation())
		if trackErr != nil {
			return trackErr
		}

		if err = uow.TrackingRepository().Add(ctx, record); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err = uow.Commit(ctx); err != nil {
			return err
		}

		driverID := candidate.ID()
		_ = h.notifier.Publish(ctx, ports.OrderEvent{
			Kind:         ports.EventDriverAssigned,
			OrderID:      aggregate.ID(),
			OrderNumber:  aggregate.OrderNumber(),
			CustomerID:   aggregate.CustomerID(),
			RestaurantID: aggregate.RestaurantID(),
			DriverID:     &driverID,
		})

		return nil
	}

	return services.ErrNoEligibleDriver
}
