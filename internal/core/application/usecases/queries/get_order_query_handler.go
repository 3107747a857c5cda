package queries

import (
	"context"
	"database/sql"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the order detail view from the orders,
// order_items, and delivery_trackings tables.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.AccessPolicy
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: services.NewAccessPolicy()}
}

// Handle returns the order detail view. The ordering customer, the
// restaurant, the assigned driver, and admins may read it.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	resp, err := h.scanOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanViewOrderParties(
		query.Actor(), resp.CustomerID, resp.RestaurantID, resp.DriverID); err != nil {
		return nil, err
	}

	if resp.Items, err = h.scanItems(ctx, query.OrderID()); err != nil {
		return nil, err
	}
	if resp.Tracking, err = h.scanTracking(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) scanOrder(ctx context.Context, orderID kernel.UUID) (*GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			restaurant_id,
			driver_id,
			status,
			subtotal,
			delivery_fee,
			tax,
			total,
			delivery_address,
			delivery_latitude,
			delivery_longitude,
			notes,
			created_at,
			estimated_delivery_time,
			actual_delivery_time
		FROM orders
		WHERE id = ?
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}

	var resp GetOrderQueryResponse
	var id, customerID, restaurantID uuid.UUID
	var driverID uuid.NullUUID
	var subtotal, deliveryFee, tax, total int64
	var latitude, longitude float64
	var estimated, actual sql.NullTime

	err = rows.Scan(
		&id,
		&resp.OrderNumber,
		&customerID,
		&restaurantID,
		&driverID,
		&resp.Status,
		&subtotal,
		&deliveryFee,
		&tax,
		&total,
		&resp.DeliveryAddress,
		&latitude,
		&longitude,
		&resp.Notes,
		&resp.CreatedAt,
		&estimated,
		&actual,
	)
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return nil, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return nil, err
	}
	if driverID.Valid {
		drvID, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.DriverID = &drvID
	}

	if resp.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return nil, err
	}
	if resp.DeliveryFee, err = kernel.NewMoney(deliveryFee); err != nil {
		return nil, err
	}
	if resp.Tax, err = kernel.NewMoney(tax); err != nil {
		return nil, err
	}
	if resp.Total, err = kernel.NewMoney(total); err != nil {
		return nil, err
	}
	if resp.DeliveryLocation, err = kernel.NewGeoPoint(latitude, longitude); err != nil {
		return nil, err
	}
	resp.EstimatedDeliveryTime = nullableTime(estimated)
	resp.ActualDeliveryTime = nullableTime(actual)

	return &resp, rows.Err()
}

func (h GetOrderQueryHandler) scanItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryResponseItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryResponseItem, 0)
	for rows.Next() {
		var item GetOrderQueryResponseItem
		var menuItemID uuid.UUID
		var unitPrice int64

		if err = rows.Scan(&menuItemID, &item.Name, &unitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		if item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) scanTracking(ctx context.Context, orderID kernel.UUID) (*GetOrderQueryResponseTracking, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			latitude,
			longitude,
			remaining_distance_km,
			estimated_arrival,
			picked_up_at,
			delivered_at
		FROM delivery_trackings
		WHERE order_id = ?
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var tr GetOrderQueryResponseTracking
	var driverID uuid.UUID
	var latitude, longitude sql.NullFloat64
	var estimatedArrival, pickedUpAt, deliveredAt sql.NullTime

	err = rows.Scan(
		&driverID,
		&latitude,
		&longitude,
		&tr.RemainingDistanceKm,
		&estimatedArrival,
		&pickedUpAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, err
	}

	if tr.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return nil, err
	}
	if latitude.Valid && longitude.Valid {
		position, posErr := kernel.NewGeoPoint(latitude.Float64, longitude.Float64)
		if posErr != nil {
			return nil, posErr
		}
		tr.Position = &position
	}
	tr.EstimatedArrival = nullableTime(estimatedArrival)
	tr.PickedUpAt = nullableTime(pickedUpAt)
	tr.DeliveredAt = nullableTime(deliveredAt)

	return &tr, rows.Err()
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
