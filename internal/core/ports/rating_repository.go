package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rating"
)

// RatingRepository defines the persistence contract for driver ratings.
type RatingRepository interface {
	// Add persists a new rating. Storage enforces at most one rating per
	// order; adding a second returns an error.
	Add(ctx context.Context, aggregate *rating.DriverRating) error

	// GetByOrder retrieves the rating submitted for an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*rating.DriverRating, error)

	// ExistsForOrder reports whether the order was already rated.
	ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)
}
