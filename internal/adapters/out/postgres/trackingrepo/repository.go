package trackingrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking record to the database.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.DeliveryTracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves an existing tracking record to the database.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.DeliveryTracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// GetByOrder retrieves the tracking record for an order.
func (r *GormTrackingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryTracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryTrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery tracking", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an order's tracking record.
func (r *GormTrackingRepository) Delete(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Delete(&DeliveryTrackingDTO{}, "order_id = ?", orderID.Bytes()).Error
}

// GetActiveByDriver retrieves the driver's tracking records for deliveries
// still underway. Position reports fan out to these.
func (r *GormTrackingRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*tracking.DeliveryTracking, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryTrackingDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "driver_id = ? AND delivered_at IS NULL", driverID.Bytes()).Error; err != nil {
		return nil, err
	}

	records := make([]*tracking.DeliveryTracking, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
