package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage, items included.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Item lines
	// are immutable after placement and are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier,
	// item lines included.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstAwaitingAssignment retrieves the oldest order that needs a
	// driver: confirmed, preparing, or ready with no driver attached.
	// Returns an object-not-found error when the backlog is empty.
	GetFirstAwaitingAssignment(ctx context.Context) (*order.Order, error)
}
