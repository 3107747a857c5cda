// Package http exposes the marketplace core over a JSON REST API. The caller
// identifies itself with the X-User-ID and X-User-Role headers; the command
// and query layer decides what that principal may do.
package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler           commands.CreateOrderCommandHandler
	cancelOrderHandler           commands.CancelOrderCommandHandler
	advanceOrderStatusHandler    commands.AdvanceOrderStatusCommandHandler
	assignDriverHandler          commands.AssignDriverCommandHandler
	registerDriverHandler        commands.RegisterDriverCommandHandler
	changeDriverStatusHandler    commands.ChangeDriverStatusCommandHandler
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler
	updateDriverPositionHandler  commands.UpdateDriverPositionCommandHandler
	submitRatingHandler          commands.SubmitRatingCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getCustomerOrdersHandler   queries.GetCustomerOrdersQueryHandler
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler
	getDriverStatisticsHandler queries.GetDriverStatisticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	registerDriverHandler commands.RegisterDriverCommandHandler,
	changeDriverStatusHandler commands.ChangeDriverStatusCommandHandler,
	setDriverAvailabilityHandler commands.SetDriverAvailabilityCommandHandler,
	updateDriverPositionHandler commands.UpdateDriverPositionCommandHandler,
	submitRatingHandler commands.SubmitRatingCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getCustomerOrdersHandler queries.GetCustomerOrdersQueryHandler,
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler,
	getDriverStatisticsHandler queries.GetDriverStatisticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		cancelOrderHandler:           cancelOrderHandler,
		advanceOrderStatusHandler:    advanceOrderStatusHandler,
		assignDriverHandler:          assignDriverHandler,
		registerDriverHandler:        registerDriverHandler,
		changeDriverStatusHandler:    changeDriverStatusHandler,
		setDriverAvailabilityHandler: setDriverAvailabilityHandler,
		updateDriverPositionHandler:  updateDriverPositionHandler,
		submitRatingHandler:          submitRatingHandler,
		getOrderHandler:              getOrderHandler,
		getCustomerOrdersHandler:     getCustomerOrdersHandler,
		getAvailableDriversHandler:   getAvailableDriversHandler,
		getDriverStatisticsHandler:   getDriverStatisticsHandler,
	}
}

// RegisterRoutes attaches every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:order_id", s.GetOrder)
	api.POST("/orders/:order_id/cancel", s.CancelOrder)
	api.POST("/orders/:order_id/advance", s.AdvanceOrderStatus)
	api.POST("/orders/:order_id/assign", s.AssignDriver)
	api.POST("/orders/:order_id/rating", s.SubmitRating)
	api.GET("/customers/:customer_id/orders", s.GetCustomerOrders)

	api.POST("/drivers", s.RegisterDriver)
	api.GET("/drivers/available", s.GetAvailableDrivers)
	api.POST("/drivers/:driver_id/status", s.ChangeDriverStatus)
	api.PUT("/drivers/:driver_id/availability", s.SetDriverAvailability)
	api.PUT("/drivers/:driver_id/position", s.UpdateDriverPosition)
	api.GET("/drivers/:driver_id/statistics", s.GetDriverStatistics)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	var body CreateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id")
	}
	restaurantID, err := kernel.UUIDFromString(body.RestaurantID)
	if err != nil {
		return s.badRequest(ctx, "Invalid restaurant id")
	}

	location, err := kernel.NewGeoPoint(body.DeliveryLatitude, body.DeliveryLongitude)
	if err != nil {
		return s.badRequest(ctx, "Invalid delivery location: "+err.Error())
	}

	items := make([]commands.ItemInput, 0, len(body.Items))
	for _, line := range body.Items {
		menuItemID, idErr := kernel.UUIDFromString(line.MenuItemID)
		if idErr != nil {
			return s.badRequest(ctx, "Invalid menu item id")
		}
		items = append(items, commands.ItemInput{MenuItemID: menuItemID, Quantity: line.Quantity})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, actor, customerID, restaurantID,
		items, body.DeliveryAddress, location, body.Notes)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:order_id - retrieves the order detail view.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFrom(detail))
}

// CancelOrder handles POST /api/v1/orders/:order_id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderStatus handles POST /api/v1/orders/:order_id/advance - moves the
// order to its next lifecycle status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/:order_id/assign - retries driver
// assignment for one order without waiting for the scheduled scan.
func (s *Server) AssignDriver(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}
	if actor.Role != services.RoleAdmin {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Only admins may trigger assignment",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAssignDriverCommandForOrder(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitRating handles POST /api/v1/orders/:order_id/rating.
func (s *Server) SubmitRating(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var body SubmitRatingRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	tip, err := kernel.NewMoney(body.TipCents)
	if err != nil {
		return s.badRequest(ctx, "Invalid tip amount")
	}

	cmd, err := commands.NewSubmitRatingCommand(
		orderID, actor, body.Overall,
		body.Punctuality, body.Professionalism, body.FoodCondition,
		body.Comment, tip)
	if err != nil {
		return s.badRequest(ctx, "Invalid rating data: "+err.Error())
	}

	if err = s.submitRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetCustomerOrders handles GET /api/v1/customers/:customer_id/orders.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	customerID, err := kernel.UUIDFromString(ctx.Param("customer_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetCustomerOrdersQuery(customerID, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	orders, err := s.getCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.commandError(ctx, err)
	}

	response := make([]CustomerOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = CustomerOrderResponse{
			ID:           row.ID.String(),
			OrderNumber:  row.OrderNumber,
			RestaurantID: row.RestaurantID.String(),
			Status:       row.Status,
			TotalCents:   row.Total.Cents(),
			CreatedAt:    row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(ctx echo.Context) error {
	var body RegisterDriverRequest
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	var managedBy *kernel.UUID
	if body.ManagedByRestaurantID != nil {
		restaurantID, err := kernel.UUIDFromString(*body.ManagedByRestaurantID)
		if err != nil {
			return s.badRequest(ctx, "Invalid managing restaurant id")
		}
		managedBy = &restaurantID
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(
		driverID, driver.VehicleType(body.VehicleType), body.LicensePlate, managedBy)
	if err != nil {
		return s.badRequest(ctx, "Invalid driver data: "+err.Error())
	}

	if err = s.registerDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: driverID.String()})
}

// ChangeDriverStatus handles POST /api/v1/drivers/:driver_id/status - the
// approve, reject, and suspend review decisions.
func (s *Server) ChangeDriverStatus(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	var body ChangeDriverStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeDriverStatusCommand(
		driverID, commands.StatusAction(body.Action), actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.changeDriverStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetDriverAvailability handles PUT /api/v1/drivers/:driver_id/availability.
func (s *Server) SetDriverAvailability(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	var body SetAvailabilityRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, body.Available, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.setDriverAvailabilityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateDriverPosition handles PUT /api/v1/drivers/:driver_id/position.
func (s *Server) UpdateDriverPosition(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	var body UpdatePositionRequest
	if err = ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	position, err := kernel.NewGeoPoint(body.Latitude, body.Longitude)
	if err != nil {
		return s.badRequest(ctx, "Invalid position: "+err.Error())
	}

	cmd, err := commands.NewUpdateDriverPositionCommand(driverID, position, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if err = s.updateDriverPositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableDrivers handles GET /api/v1/drivers/available - lists on-shift
// drivers near a point, nearest first.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	var params struct {
		Latitude  float64 `query:"latitude"`
		Longitude float64 `query:"longitude"`
		RadiusKm  float64 `query:"radius_km"`
	}
	if err := ctx.Bind(&params); err != nil {
		return s.badRequest(ctx, "Invalid query parameters")
	}

	origin, err := kernel.NewGeoPoint(params.Latitude, params.Longitude)
	if err != nil {
		return s.badRequest(ctx, "Invalid origin: "+err.Error())
	}

	query, err := queries.NewGetAvailableDriversQuery(origin, params.RadiusKm)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	drivers, err := s.getAvailableDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.commandError(ctx, err)
	}

	response := make([]AvailableDriverResponse, len(drivers))
	for i, row := range drivers {
		response[i] = AvailableDriverResponse{
			ID:          row.ID.String(),
			VehicleType: row.VehicleType,
			Position: GeoPointResponse{
				Latitude:  row.Position.Latitude(),
				Longitude: row.Position.Longitude(),
			},
			DistanceKm:    row.DistanceKm,
			AverageRating: row.AverageRating,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDriverStatistics handles GET /api/v1/drivers/:driver_id/statistics.
func (s *Server) GetDriverStatistics(ctx echo.Context) error {
	actor, err := s.actorFrom(ctx)
	if err != nil {
		return s.unauthorized(ctx)
	}

	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid driver id")
	}

	query, err := queries.NewGetDriverStatisticsQuery(driverID, actor)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	stats, err := s.getDriverStatisticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.commandError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DriverStatisticsResponse{
		DriverID:               stats.DriverID.String(),
		Status:                 stats.Status,
		TotalDeliveries:        stats.TotalDeliveries,
		TotalRatings:           stats.TotalRatings,
		AverageRating:          stats.AverageRating,
		TotalEarningsCents:     stats.TotalEarnings.Cents(),
		TotalTipsCents:         stats.TotalTips.Cents(),
		AveragePunctuality:     stats.AveragePunctuality,
		AverageProfessionalism: stats.AverageProfessionalism,
		AverageFoodCondition:   stats.AverageFoodCondition,
	})
}

// actorFrom builds the requesting principal from the identity headers.
func (s *Server) actorFrom(ctx echo.Context) (services.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-ID"))
	if err != nil {
		return services.Actor{}, err
	}

	role := services.Role(ctx.Request().Header.Get("X-User-Role"))
	if err = role.Validate(); err != nil {
		return services.Actor{}, err
	}

	return services.NewActor(id, role)
}

func (s *Server) unauthorized(ctx echo.Context) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: "Missing or invalid identity headers",
	})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// commandError maps application errors to HTTP statuses.
func (s *Server) commandError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrAuthorization):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, commands.ErrOrderAlreadyRated):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNoEligibleDriver):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
