package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// RestaurantSnapshot is the read model of a restaurant as the ordering flow
// needs it: where it is, what it charges for delivery, and whether it
// currently accepts orders.
type RestaurantSnapshot struct {
	ID          kernel.UUID
	Name        string
	Location    kernel.GeoPoint
	DeliveryFee kernel.Money
	IsOpen      bool
}

// MenuItemSnapshot is the read model of one menu item at ordering time. The
// name and price are copied into the order line so later menu edits never
// change a placed order.
type MenuItemSnapshot struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	Price        kernel.Money
	IsAvailable  bool
}

// RestaurantDirectory looks up restaurants for order placement and
// assignment. Restaurant management itself lives outside this core.
type RestaurantDirectory interface {
	// GetRestaurant retrieves a restaurant snapshot by id.
	GetRestaurant(ctx context.Context, id kernel.UUID) (RestaurantSnapshot, error)
}

// MenuCatalog looks up menu items for order placement.
type MenuCatalog interface {
	// GetMenuItems retrieves the snapshots for the given menu items of one
	// restaurant. Items belonging to another restaurant are not returned;
	// the caller treats a missing id as a validation failure.
	GetMenuItems(ctx context.Context, restaurantID kernel.UUID, ids []kernel.UUID) ([]MenuItemSnapshot, error)
}
