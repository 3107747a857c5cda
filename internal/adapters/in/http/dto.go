package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the id assigned to a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// OrderItemRequest is one requested order line.
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID        string             `json:"customer_id"`
	RestaurantID      string             `json:"restaurant_id"`
	Items             []OrderItemRequest `json:"items"`
	DeliveryAddress   string             `json:"delivery_address"`
	DeliveryLatitude  float64            `json:"delivery_latitude"`
	DeliveryLongitude float64            `json:"delivery_longitude"`
	Notes             string             `json:"notes"`
}

// RegisterDriverRequest is the body of POST /api/v1/drivers.
type RegisterDriverRequest struct {
	VehicleType           string  `json:"vehicle_type"`
	LicensePlate          string  `json:"license_plate"`
	ManagedByRestaurantID *string `json:"managed_by_restaurant_id,omitempty"`
}

// ChangeDriverStatusRequest is the body of POST /api/v1/drivers/:driver_id/status.
type ChangeDriverStatusRequest struct {
	Action string `json:"action"`
}

// SetAvailabilityRequest is the body of PUT /api/v1/drivers/:driver_id/availability.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// UpdatePositionRequest is the body of PUT /api/v1/drivers/:driver_id/position.
type UpdatePositionRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SubmitRatingRequest is the body of POST /api/v1/orders/:order_id/rating.
type SubmitRatingRequest struct {
	Overall         int    `json:"overall"`
	Punctuality     *int   `json:"punctuality,omitempty"`
	Professionalism *int   `json:"professionalism,omitempty"`
	FoodCondition   *int   `json:"food_condition,omitempty"`
	Comment         string `json:"comment"`
	TipCents        int64  `json:"tip_cents"`
}

// GeoPointResponse is a coordinate pair in a JSON response.
type GeoPointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderItemResponse is one order line in the detail view.
type OrderItemResponse struct {
	MenuItemID     string `json:"menu_item_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

// OrderTrackingResponse is the live delivery state in the detail view.
type OrderTrackingResponse struct {
	DriverID            string            `json:"driver_id"`
	Position            *GeoPointResponse `json:"position,omitempty"`
	RemainingDistanceKm float64           `json:"remaining_distance_km"`
	EstimatedArrival    *time.Time        `json:"estimated_arrival,omitempty"`
	PickedUpAt          *time.Time        `json:"picked_up_at,omitempty"`
	DeliveredAt         *time.Time        `json:"delivered_at,omitempty"`
}

// OrderResponse is the body of GET /api/v1/orders/:order_id.
type OrderResponse struct {
	ID                    string                 `json:"id"`
	OrderNumber           string                 `json:"order_number"`
	CustomerID            string                 `json:"customer_id"`
	RestaurantID          string                 `json:"restaurant_id"`
	DriverID              *string                `json:"driver_id,omitempty"`
	Status                string                 `json:"status"`
	SubtotalCents         int64                  `json:"subtotal_cents"`
	DeliveryFeeCents      int64                  `json:"delivery_fee_cents"`
	TaxCents              int64                  `json:"tax_cents"`
	TotalCents            int64                  `json:"total_cents"`
	DeliveryAddress       string                 `json:"delivery_address"`
	DeliveryLocation      GeoPointResponse       `json:"delivery_location"`
	Notes                 string                 `json:"notes,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
	EstimatedDeliveryTime *time.Time             `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time             `json:"actual_delivery_time,omitempty"`
	Items                 []OrderItemResponse    `json:"items"`
	Tracking              *OrderTrackingResponse `json:"tracking,omitempty"`
}

// CustomerOrderResponse is one row of GET /api/v1/customers/:customer_id/orders.
type CustomerOrderResponse struct {
	ID           string    `json:"id"`
	OrderNumber  string    `json:"order_number"`
	RestaurantID string    `json:"restaurant_id"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailableDriverResponse is one row of GET /api/v1/drivers/available.
type AvailableDriverResponse struct {
	ID            string           `json:"id"`
	VehicleType   string           `json:"vehicle_type"`
	Position      GeoPointResponse `json:"position"`
	DistanceKm    float64          `json:"distance_km"`
	AverageRating float64          `json:"average_rating"`
}

// DriverStatisticsResponse is the body of GET /api/v1/drivers/:driver_id/statistics.
type DriverStatisticsResponse struct {
	DriverID               string  `json:"driver_id"`
	Status                 string  `json:"status"`
	TotalDeliveries        int     `json:"total_deliveries"`
	TotalRatings           int     `json:"total_ratings"`
	AverageRating          float64 `json:"average_rating"`
	TotalEarningsCents     int64   `json:"total_earnings_cents"`
	TotalTipsCents         int64   `json:"total_tips_cents"`
	AveragePunctuality     float64 `json:"average_punctuality"`
	AverageProfessionalism float64 `json:"average_professionalism"`
	AverageFoodCondition   float64 `json:"average_food_condition"`
}

// orderResponseFrom maps the order detail read model to its JSON shape.
func orderResponseFrom(detail *queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:               detail.ID.String(),
		OrderNumber:      detail.OrderNumber,
		CustomerID:       detail.CustomerID.String(),
		RestaurantID:     detail.RestaurantID.String(),
		Status:           detail.Status,
		SubtotalCents:    detail.Subtotal.Cents(),
		DeliveryFeeCents: detail.DeliveryFee.Cents(),
		TaxCents:         detail.Tax.Cents(),
		TotalCents:       detail.Total.Cents(),
		DeliveryAddress:  detail.DeliveryAddress,
		DeliveryLocation: GeoPointResponse{
			Latitude:  detail.DeliveryLocation.Latitude(),
			Longitude: detail.DeliveryLocation.Longitude(),
		},
		Notes:                 detail.Notes,
		CreatedAt:             detail.CreatedAt,
		EstimatedDeliveryTime: detail.EstimatedDeliveryTime,
		ActualDeliveryTime:    detail.ActualDeliveryTime,
	}

	if detail.DriverID != nil {
		driverID := detail.DriverID.String()
		resp.DriverID = &driverID
	}

	resp.Items = make([]OrderItemResponse, len(detail.Items))
	for i, item := range detail.Items {
		resp.Items[i] = OrderItemResponse{
			MenuItemID:     item.MenuItemID.String(),
			Name:           item.Name,
			UnitPriceCents: item.UnitPrice.Cents(),
			Quantity:       item.Quantity,
		}
	}

	if detail.Tracking != nil {
		tracking := OrderTrackingResponse{
			DriverID:            detail.Tracking.DriverID.String(),
			RemainingDistanceKm: detail.Tracking.RemainingDistanceKm,
			EstimatedArrival:    detail.Tracking.EstimatedArrival,
			PickedUpAt:          detail.Tracking.PickedUpAt,
			DeliveredAt:         detail.Tracking.DeliveredAt,
		}
		if detail.Tracking.Position != nil {
			tracking.Position = &GeoPointResponse{
				Latitude:  detail.Tracking.Position.Latitude(),
				Longitude: detail.Tracking.Position.Longitude(),
			}
		}
		resp.Tracking = &tracking
	}

	return resp
}
