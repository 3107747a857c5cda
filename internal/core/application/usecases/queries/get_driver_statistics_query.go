package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetDriverStatisticsQueryIsNotConstructed = errors.New(
		"GetDriverStatisticsQuery must be created via NewGetDriverStatisticsQuery constructor",
	)
)

// GetDriverStatisticsQuery retrieves a driver's performance summary:
// delivery and earnings counters from the registry plus rating breakdowns
// aggregated over the submitted ratings.
type GetDriverStatisticsQuery struct {
	driverID kernel.UUID
	actor    services.Actor

	guard guard.ConstructorGuard
}

// NewGetDriverStatisticsQuery creates a query for a driver's statistics.
func NewGetDriverStatisticsQuery(driverID kernel.UUID, actor services.Actor) (GetDriverStatisticsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverStatisticsQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return GetDriverStatisticsQuery{}, err
	}

	return GetDriverStatisticsQuery{
		driverID: driverID,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverStatisticsQueryIsNotConstructed)
}

// DriverID returns the driver whose statistics are requested.
func (q GetDriverStatisticsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Actor returns the principal issuing the query.
func (q GetDriverStatisticsQuery) Actor() services.Actor {
	return q.actor
}

// GetDriverStatisticsQueryResponse is a driver's performance summary.
// The Average* breakdowns are zero when no rating carried that sub-score.
type GetDriverStatisticsQueryResponse struct {
	DriverID               kernel.UUID
	Status                 string
	TotalDeliveries        int
	TotalRatings           int
	AverageRating          float64
	TotalEarnings          kernel.Money
	TotalTips              kernel.Money
	AveragePunctuality     float64
	AverageProfessionalism float64
	AverageFoodCondition   float64
}
