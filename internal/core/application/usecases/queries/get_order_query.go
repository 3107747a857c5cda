package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves one order with its line items and, when a driver
// is on the way, the live tracking state.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   services.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order's detail view.
func NewGetOrderQuery(orderID kernel.UUID, actor services.Actor) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order's id.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the principal issuing the query.
func (q GetOrderQuery) Actor() services.Actor {
	return q.actor
}

// GetOrderQueryResponseItem is one line item of the order detail view.
type GetOrderQueryResponseItem struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
}

// GetOrderQueryResponseTracking is the live delivery state of the order
// detail view. Present only once a driver has been assigned.
type GetOrderQueryResponseTracking struct {
	DriverID            kernel.UUID
	Position            *kernel.GeoPoint
	RemainingDistanceKm float64
	EstimatedArrival    *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time
}

// GetOrderQueryResponse is the full order detail view.
type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	CustomerID            kernel.UUID
	RestaurantID          kernel.UUID
	DriverID              *kernel.UUID
	Status                string
	Subtotal              kernel.Money
	DeliveryFee           kernel.Money
	Tax                   kernel.Money
	Total                 kernel.Money
	DeliveryAddress       string
	DeliveryLocation      kernel.GeoPoint
	Notes                 string
	CreatedAt             time.Time
	EstimatedDeliveryTime *time.Time
	ActualDeliveryTime    *time.Time
	Items                 []GetOrderQueryResponseItem
	Tracking              *GetOrderQueryResponseTracking
}
