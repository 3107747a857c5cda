package commands

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Looks up the restaurant and the requested menu items, snapshots names and
// prices into the order lines, and persists the order in pending status.
// Placement is all-or-nothing: a missing or unavailable menu item fails the
// whole order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.RestaurantDirectory
	catalog    ports.MenuCatalog
	notifier   ports.Notifier
	policy     services.AccessPolicy
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.RestaurantDirectory,
	catalog ports.MenuCatalog,
	notifier ports.Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		catalog:    catalog,
		notifier:   notifier,
		policy:     services.NewAccessPolicy(),
	}
}

// Handle processes the order placement command. The order's totals are
// computed by the aggregate from the catalog snapshots and the restaurant's
// delivery fee. The new-order event is published only after the transaction
// commits.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.policy.CanPlaceOrder(cmd.Actor(), cmd.CustomerID()); err != nil {
		return err
	}

	restaurant, err := h.directory.GetRestaurant(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	if !restaurant.IsOpen {
		return errs.NewValueIsInvalidErrorWithCause("restaurant",
			fmt.Errorf("restaurant %s is not accepting orders", restaurant.ID))
	}

	items, err := h.buildItems(ctx, cmd)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		items,
		restaurant.DeliveryFee,
		cmd.DeliveryAddress(),
		cmd.DeliveryLocation(),
		cmd.Notes(),
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best effort: the notifier logs failures, an outage must not fail a
	// committed order.
	_ = h.notifier.Publish(ctx, ports.OrderEvent{
		Kind:         ports.EventNewOrder,
		OrderID:      newOrder.ID(),
		OrderNumber:  newOrder.OrderNumber(),
		CustomerID:   newOrder.CustomerID(),
		RestaurantID: newOrder.RestaurantID(),
	})

	return nil
}

// buildItems resolves the requested lines against the menu catalog and
// snapshots name and unit price into domain items.
func (h *CreateOrderCommandHandler) buildItems(ctx context.Context, cmd CreateOrderCommand) ([]*order.Item, error) {
	ids := make([]kernel.UUID, len(cmd.Items()))
	for i, input := range cmd.Items() {
		ids[i] = input.MenuItemID
	}

	snapshots, err := h.catalog.GetMenuItems(ctx, cmd.RestaurantID(), ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]ports.MenuItemSnapshot, len(snapshots))
	for _, s := range snapshots {
		byID[s.ID] = s
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		snapshot, ok := byID[input.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menu item", input.MenuItemID)
		}
		if !snapshot.IsAvailable {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu item",
				fmt.Errorf("%s is not available", snapshot.Name))
		}

		item, err := order.NewItem(snapshot.ID, snapshot.Name, snapshot.Price, input.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
