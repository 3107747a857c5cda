// Package ports defines the contracts between the application core and
// infrastructure: repositories for the aggregates, the unit of work, and the
// outbound collaborators (event notifier, restaurant directory). These
// interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	// The driver must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable retrieves every approved driver currently flagged
	// available. Used by the assignment engine to build the candidate pool;
	// eligibility filtering (radius, distance preference) happens in the
	// domain.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)

	// Claim atomically flips the driver from available to unavailable,
	// guarded by the driver still being available and approved. Returns
	// false without error when another transaction won the race; the caller
	// then tries the next candidate.
	Claim(ctx context.Context, id kernel.UUID) (bool, error)

	// ApplyRating atomically folds one rating into the driver's cached
	// aggregates: the running average, the rating count, and the tip total.
	// Single-statement arithmetic in storage keeps concurrent submissions
	// from losing updates.
	ApplyRating(ctx context.Context, id kernel.UUID, overall int, tip kernel.Money) error
}
