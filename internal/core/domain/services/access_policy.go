package services

import (
	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Role identifies what kind of principal an actor is.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// Validate checks if the Role is one of the supported kinds.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDriver, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// Actor is the authenticated principal performing an operation. For
// customers the id is the customer id, for restaurants the restaurant id,
// for drivers the driver id.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates an Actor after validating its parts.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}

// AccessPolicy is a domain service that concentrates every who-may-do-what
// rule of the marketplace in one place. Each method returns nil when the
// actor may perform the operation and an authorization error otherwise, so
// handlers never hand-roll ownership checks.
//
// Admins pass every check.
type AccessPolicy struct{}

// NewAccessPolicy creates a new AccessPolicy instance.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// CanPlaceOrder permits customers placing orders as themselves and admins
// placing orders on a customer's behalf.
func (p AccessPolicy) CanPlaceOrder(actor Actor, customerID kernel.UUID) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role == RoleCustomer && actor.ID.IsEqual(customerID) {
		return nil
	}
	return errs.NewAuthorizationError("place order")
}

// CanViewOrder permits the ordering customer, the restaurant the order was
// placed at, the assigned driver, and admins.
func (p AccessPolicy) CanViewOrder(actor Actor, o *order.Order) error {
	return p.CanViewOrderParties(actor, o.CustomerID(), o.RestaurantID(), o.DriverID())
}

// CanViewOrderParties is CanViewOrder for callers that hold the order's
// party ids without the aggregate, such as read-side query handlers.
func (p AccessPolicy) CanViewOrderParties(actor Actor, customerID, restaurantID kernel.UUID, driverID *kernel.UUID) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleCustomer:
		if actor.ID.IsEqual(customerID) {
			return nil
		}
	case RoleRestaurant:
		if actor.ID.IsEqual(restaurantID) {
			return nil
		}
	case RoleDriver:
		if driverID != nil && actor.ID.IsEqual(*driverID) {
			return nil
		}
	}
	return errs.NewAuthorizationError("view order")
}

// CanCancelOrder permits only the ordering customer and admins. Whether the
// order's status still allows cancelling is the aggregate's concern, not the
// policy's.
func (p AccessPolicy) CanCancelOrder(actor Actor, o *order.Order) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role == RoleCustomer && actor.ID.IsEqual(o.CustomerID()) {
		return nil
	}
	return errs.NewAuthorizationError("cancel order")
}

// CanAdvanceOrder permits the party responsible for the order's next step:
// the restaurant moves the order through confirmation and the kitchen
// (pending through ready), the assigned driver through pickup and delivery.
// Admins may advance any order.
func (p AccessPolicy) CanAdvanceOrder(actor Actor, o *order.Order) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleRestaurant:
		switch o.Status() {
		case order.StatusPending, order.StatusConfirmed, order.StatusPreparing:
			if actor.ID.IsEqual(o.RestaurantID()) {
				return nil
			}
		}
	case RoleDriver:
		switch o.Status() {
		case order.StatusReady, order.StatusPickedUp:
			if o.DriverID() != nil && actor.ID.IsEqual(*o.DriverID()) {
				return nil
			}
		}
	}
	return errs.NewAuthorizationError("advance order status")
}

// CanSubmitRating permits only the ordering customer and admins.
func (p AccessPolicy) CanSubmitRating(actor Actor, o *order.Order) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role == RoleCustomer && actor.ID.IsEqual(o.CustomerID()) {
		return nil
	}
	return errs.NewAuthorizationError("submit rating")
}

// CanManageDriver permits admins for any driver and restaurants for the
// drivers they manage. Managing covers approval, rejection, and suspension.
func (p AccessPolicy) CanManageDriver(actor Actor, d *driver.Driver) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleRestaurant:
		if d.ManagedByRestaurantID() != nil && actor.ID.IsEqual(*d.ManagedByRestaurantID()) {
			return nil
		}
	}
	return errs.NewAuthorizationError("manage driver")
}

// CanActAsDriver permits the driver themself and admins. Covers position
// reports.
func (p AccessPolicy) CanActAsDriver(actor Actor, d *driver.Driver) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.Role == RoleDriver && actor.ID.IsEqual(d.ID()) {
		return nil
	}
	return errs.NewAuthorizationError("act as driver")
}

// CanSetDriverAvailability permits the driver themself, the restaurant that
// manages the driver, and admins.
func (p AccessPolicy) CanSetDriverAvailability(actor Actor, d *driver.Driver) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleDriver:
		if actor.ID.IsEqual(d.ID()) {
			return nil
		}
	case RoleRestaurant:
		if d.ManagedByRestaurantID() != nil && actor.ID.IsEqual(*d.ManagedByRestaurantID()) {
			return nil
		}
	}
	return errs.NewAuthorizationError("set driver availability")
}

// CanViewDriverStatistics permits the driver themself, the managing
// restaurant, and admins.
func (p AccessPolicy) CanViewDriverStatistics(actor Actor, d *driver.Driver) error {
	return p.CanViewDriverStatisticsParties(actor, d.ID(), d.ManagedByRestaurantID())
}

// CanViewDriverStatisticsParties is CanViewDriverStatistics for callers that
// hold the ids without the aggregate.
func (p AccessPolicy) CanViewDriverStatisticsParties(actor Actor, driverID kernel.UUID, managedByRestaurantID *kernel.UUID) error {
	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleDriver:
		if actor.ID.IsEqual(driverID) {
			return nil
		}
	case RoleRestaurant:
		if managedByRestaurantID != nil && actor.ID.IsEqual(*managedByRestaurantID) {
			return nil
		}
	}
	return errs.NewAuthorizationError("view driver statistics")
}
