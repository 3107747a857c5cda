package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverStatisticsQueryHandler reads a driver's counters from the
// registry row and folds the rating sub-score averages in the database.
type GetDriverStatisticsQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetDriverStatisticsQueryHandler creates a handler for driver
// statistics queries.
func NewGetDriverStatisticsQueryHandler(db *gorm.DB) GetDriverStatisticsQueryHandler {
	return GetDriverStatisticsQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle returns the driver's statistics. The driver themself, the managing
// restaurant, and admins may read them.
func (h GetDriverStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverStatisticsQuery,
) (*GetDriverStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.status,
			d.total_deliveries,
			d.total_ratings,
			d.average_rating,
			d.total_earnings,
			d.total_tips,
			d.managed_by_restaurant_id,
			AVG(r.punctuality),
			AVG(r.professionalism),
			AVG(r.food_condition)
		FROM drivers d
		LEFT JOIN driver_ratings r ON r.driver_id = d.id
		WHERE d.id = ?
		GROUP BY d.id
	`, query.DriverID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("driver", query.DriverID())
	}

	resp := GetDriverStatisticsQueryResponse{DriverID: query.DriverID()}
	var earnings, tips int64
	var managedBy uuid.NullUUID
	var punctuality, professionalism, foodCondition sql.NullFloat64

	err = rows.Scan(
		&resp.Status,
		&resp.TotalDeliveries,
		&resp.TotalRatings,
		&resp.AverageRating,
		&earnings,
		&tips,
		&managedBy,
		&punctuality,
		&professionalism,
		&foodCondition,
	)
	if err != nil {
		return nil, err
	}

	var managedByID *kernel.UUID
	if managedBy.Valid {
		id, idErr := kernel.UUIDFromBytes(managedBy.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		managedByID = &id
	}

	if err = h.policy.CanViewDriverStatisticsParties(
		query.Actor(), query.DriverID(), managedByID); err != nil {
		return nil, err
	}

	if resp.TotalEarnings, err = kernel.NewMoney(earnings); err != nil {
		return nil, err
	}
	if resp.TotalTips, err = kernel.NewMoney(tips); err != nil {
		return nil, err
	}
	resp.AveragePunctuality = punctuality.Float64
	resp.AverageProfessionalism = professionalism.Float64
	resp.AverageFoodCondition = foodCondition.Float64

	return &resp, rows.Err()
}
