package queries

import (
	"context"
	"sort"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDriversQueryHandler lists nearby on-shift drivers. The database
// narrows the set to approved, available drivers with a known position; the
// haversine distance and radius cut happen here, mirroring how the dispatcher
// ranks candidates.
type GetAvailableDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDriversQueryHandler creates a handler for nearby driver
// queries.
func NewGetAvailableDriversQueryHandler(db *gorm.DB) GetAvailableDriversQueryHandler {
	return GetAvailableDriversQueryHandler{db: db}
}

// Handle returns available approved drivers within the query radius,
// nearest first. A driver's own maximum delivery distance caps the radius
// for that driver.
func (h GetAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDriversQuery,
) ([]GetAvailableDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			vehicle_type,
			latitude,
			longitude,
			average_rating,
			max_delivery_distance_km
		FROM drivers
		WHERE is_available
		  AND status = ?
		  AND latitude IS NOT NULL
		  AND longitude IS NOT NULL
	`, driver.StatusApproved.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetAvailableDriversQueryResponse, 0)

	for rows.Next() {
		var driverResp GetAvailableDriversQueryResponse
		var id uuid.UUID
		var latitude, longitude, maxDistanceKm float64

		err = rows.Scan(
			&id,
			&driverResp.VehicleType,
			&latitude,
			&longitude,
			&driverResp.AverageRating,
			&maxDistanceKm,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		driverResp.ID = driverID

		position, posErr := kernel.NewGeoPoint(latitude, longitude)
		if posErr != nil {
			return nil, posErr
		}
		driverResp.Position = position

		distanceKm, distErr := query.Origin().DistanceKm(position)
		if distErr != nil {
			return nil, distErr
		}

		reach := query.RadiusKm()
		if maxDistanceKm < reach {
			reach = maxDistanceKm
		}
		if distanceKm > reach {
			continue
		}
		driverResp.DistanceKm = distanceKm

		drivers = append(drivers, driverResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(drivers, func(i, j int) bool {
		if drivers[i].DistanceKm != drivers[j].DistanceKm {
			return drivers[i].DistanceKm < drivers[j].DistanceKm
		}
		return drivers[i].ID.Less(drivers[j].ID)
	})

	return drivers, nil
}
