package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for delivery tracking
// records. A record's identity is its order id.
type TrackingRepository interface {
	// Add persists a new tracking record, created when a driver is assigned.
	Add(ctx context.Context, aggregate *tracking.DeliveryTracking) error

	// Update persists changes to an existing tracking record.
	Update(ctx context.Context, aggregate *tracking.DeliveryTracking) error

	// GetByOrder retrieves the tracking record for an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryTracking, error)

	// GetActiveByDriver retrieves the driver's tracking records for
	// deliveries still underway. Position reports fan out to these.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*tracking.DeliveryTracking, error)

	// Delete removes an order's tracking record. Used when an order is
	// cancelled after a driver was assigned.
	Delete(ctx context.Context, orderID kernel.UUID) error
}
