// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, persisting the item line snapshots alongside the order row.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Status, customer, and driver are indexed for the read side and
// the assignment backlog scan.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderNumber           string     `gorm:"type:varchar(8);not null"`
	CustomerID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	RestaurantID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	DriverID              *uuid.UUID `gorm:"type:uuid;index"`
	Items                 []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal              int64      `gorm:"not null"`
	DeliveryFee           int64      `gorm:"not null"`
	Tax                   int64      `gorm:"not null"`
	Total                 int64      `gorm:"not null"`
	DeliveryAddress       string     `gorm:"type:varchar(512);not null"`
	DeliveryLatitude      float64    `gorm:"not null"`
	DeliveryLongitude     float64    `gorm:"not null"`
	Notes                 string     `gorm:"type:text"`
	Status                string     `gorm:"type:varchar(32);not null;index"`
	CreatedAt             time.Time  `gorm:"not null;index"`
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted order line. Lines are written once
// at placement and never updated; the surrogate key keeps insertion order.
type OrderItemDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	UnitPrice  int64     `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation, item lines included.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	var driverID *uuid.UUID
	if id := o.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    orderID,
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Cents(),
			Quantity:   item.Quantity(),
		})
	}

	return OrderDTO{
		ID:                    orderID,
		OrderNumber:           o.OrderNumber(),
		CustomerID:            o.CustomerID().Bytes(),
		RestaurantID:          o.RestaurantID().Bytes(),
		DriverID:              driverID,
		Items:                 items,
		Subtotal:              o.Subtotal().Cents(),
		DeliveryFee:           o.DeliveryFee().Cents(),
		Tax:                   o.Tax().Cents(),
		Total:                 o.Total().Cents(),
		DeliveryAddress:       o.DeliveryAddress(),
		DeliveryLatitude:      o.DeliveryLocation().Latitude(),
		DeliveryLongitude:     o.DeliveryLocation().Longitude(),
		Notes:                 o.Notes(),
		Status:                o.Status().String(),
		CreatedAt:             o.CreatedAt(),
		EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		ActualDeliveryTime:    o.ActualDeliveryTime(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.Tax)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.DeliveryLatitude, dto.DeliveryLongitude)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		customerID,
		restaurantID,
		driverID,
		items,
		subtotal,
		deliveryFee,
		tax,
		total,
		dto.DeliveryAddress,
		location,
		dto.Notes,
		status,
		dto.CreatedAt,
		dto.EstimatedDeliveryTime,
		dto.ActualDeliveryTime,
	)
}

// itemToDomain converts an order line DTO to its domain snapshot.
func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return nil, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}

	return order.NewItem(menuItemID, dto.Name, unitPrice, dto.Quantity)
}
