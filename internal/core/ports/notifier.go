package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// EventKind names the order lifecycle moments published to interested
// parties.
type EventKind string

const (
	// EventNewOrder fires when a customer places an order; the restaurant
	// listens for it.
	EventNewOrder EventKind = "new_order"

	// EventReadyForPickup fires when the kitchen finishes an order; the
	// assigned driver listens for it.
	EventReadyForPickup EventKind = "ready_for_pickup"

	// EventDriverAssigned fires when a driver is claimed for an order; the
	// customer and the restaurant listen for it.
	EventDriverAssigned EventKind = "assigned"
)

// OrderEvent is the payload published for every order lifecycle moment.
type OrderEvent struct {
	Kind         EventKind
	OrderID      kernel.UUID
	OrderNumber  string
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	DriverID     *kernel.UUID
}

// Notifier publishes order lifecycle events to the message broker.
// Publishing is best-effort from the caller's perspective: command handlers
// commit first and notify after, so a broker outage never fails an order.
type Notifier interface {
	Publish(ctx context.Context, event OrderEvent) error
}
