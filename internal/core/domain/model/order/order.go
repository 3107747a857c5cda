package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// TaxRate is the flat tax applied to the items subtotal.
const TaxRate = 0.10

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderHasNoItems is returned when placing an order with an empty item list.
	ErrOrderHasNoItems = errs.NewValueIsRequiredError("order items")
	// ErrDriverAlreadyAssigned is returned when assigning a driver to an order that has one.
	ErrDriverAlreadyAssigned = errors.New("order already has a driver assigned")
)

// Order is the aggregate root for a customer's order at one restaurant. It
// owns the item lines, the monetary totals, and the delivery destination, and
// drives the status state machine.
//
// Invariants:
//   - At least one item; item snapshots never change after placement.
//   - total = subtotal + delivery fee + tax, where tax is 10% of the
//     subtotal. Totals are computed once at placement and never recomputed.
//   - A driver can only be attached while the order is confirmed, preparing,
//     or ready, and only if no driver is attached yet.
//   - picked_up requires an assigned driver; delivered stamps the actual
//     delivery time.
type Order struct {
	id                    kernel.UUID
	orderNumber           string
	customerID            kernel.UUID
	restaurantID          kernel.UUID
	driverID              *kernel.UUID
	items                 []*Item
	subtotal              kernel.Money
	deliveryFee           kernel.Money
	tax                   kernel.Money
	total                 kernel.Money
	deliveryAddress       string
	deliveryLocation      kernel.GeoPoint
	notes                 string
	status                Status
	createdAt             time.Time
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time

	guard guard.ConstructorGuard
}

// NewOrder places a new order. It computes the monetary totals from the item
// snapshots: subtotal is the sum of the lines, tax is 10% of the subtotal,
// and total is subtotal + delivery fee + tax. The order starts pending with
// no driver.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	items []*Item,
	deliveryFee kernel.Money,
	deliveryAddress string,
	deliveryLocation kernel.GeoPoint,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		orderNumber: GenerateOrderNumber(),
		notes:       notes,
		status:      StatusPending,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	subtotal := kernel.Money(0)
	for _, item := range o.items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	o.subtotal = subtotal
	o.tax = subtotal.MultiplyRate(TaxRate)
	o.total = subtotal.Add(o.deliveryFee).Add(o.tax)

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage. The
// stored totals are trusted as-is; they were computed at placement.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	driverID *kernel.UUID,
	items []*Item,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	tax kernel.Money,
	total kernel.Money,
	deliveryAddress string,
	deliveryLocation kernel.GeoPoint,
	notes string,
	status Status,
	createdAt time.Time,
	estimatedDeliveryTime *time.Time,
	actualDeliveryTime *time.Time,
) (*Order, error) {
	o := &Order{
		notes:     notes,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryFee(deliveryFee),
		o.setDeliveryAddress(deliveryAddress),
		o.setDeliveryLocation(deliveryLocation),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	o.driverID = driverID
	o.subtotal = subtotal
	o.tax = tax
	o.total = total
	o.estimatedDeliveryTime = estimatedDeliveryTime
	o.actualDeliveryTime = actualDeliveryTime

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-friendly order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// CustomerID returns the ordering customer's id.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant the order was placed at.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// DriverID returns the assigned driver's id, or nil if unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// Items returns the order lines.
func (o *Order) Items() []*Item {
	return o.items
}

// Subtotal returns the sum of all item lines.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the delivery fee charged for the order.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Tax returns the tax charged on the subtotal.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// Total returns subtotal + delivery fee + tax.
func (o *Order) Total() kernel.Money {
	return o.total
}

// DeliveryAddress returns the free-form destination address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// DeliveryLocation returns the destination coordinates.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// Notes returns the customer's free-form instructions.
func (o *Order) Notes() string {
	return o.notes
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryTime returns the current delivery estimate, or nil before
// a driver first reports a position.
func (o *Order) EstimatedDeliveryTime() *time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns when the order was delivered, or nil until then.
func (o *Order) ActualDeliveryTime() *time.Time {
	return o.actualDeliveryTime
}

// IsAwaitingAssignment reports whether the order still needs a driver: it is
// in a driver-assignable status and has none attached.
func (o *Order) IsAwaitingAssignment() bool {
	return o.driverID == nil && o.isDriverAssignable()
}

func (o *Order) isDriverAssignable() bool {
	return o.status == StatusConfirmed || o.status == StatusPreparing || o.status == StatusReady
}

// AssignDriver attaches a driver to the order. Allowed only while the order
// is confirmed, preparing, or ready, and only once; a delivered or cancelled
// order never gains a driver.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if !o.isDriverAssignable() {
		return errs.NewInvalidStateTransitionError("order", o.status.String(), "driver assigned")
	}

	if o.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	o.driverID = &driverID
	return nil
}

// Confirm transitions the order from pending to confirmed.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// StartPreparing transitions the order from confirmed to preparing.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady transitions the order from preparing to ready.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// PickUp transitions the order from ready to picked_up. Requires an
// assigned driver.
func (o *Order) PickUp() error {
	if o.driverID == nil {
		return errs.NewInvalidStateTransitionErrorWithCause("order", o.status.String(), StatusPickedUp.String(),
			errors.New("no driver assigned"))
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver transitions the order from picked_up to delivered and stamps the
// actual delivery time.
func (o *Order) Deliver(at time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.actualDeliveryTime = &at
	return nil
}

// Cancel transitions the order to cancelled. Only pending and confirmed
// orders can be cancelled; once preparation started the order runs to
// completion.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Advance moves the order one step along the happy path, dispatching to the
// matching transition so its side effects (driver check, delivery timestamp)
// still apply.
func (o *Order) Advance(at time.Time) error {
	switch o.status {
	case StatusPending:
		return o.Confirm()
	case StatusConfirmed:
		return o.StartPreparing()
	case StatusPreparing:
		return o.MarkReady()
	case StatusReady:
		return o.PickUp()
	case StatusPickedUp:
		return o.Deliver(at)
	default:
		return errs.NewInvalidStateTransitionError("order", o.status.String(), "next")
	}
}

// SetEstimatedDeliveryTime records the latest delivery estimate produced by
// the tracking module.
func (o *Order) SetEstimatedDeliveryTime(at time.Time) {
	o.estimatedDeliveryTime = &at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(number string) error {
	if err := ValidateOrderNumber(number); err != nil {
		return err
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setDeliveryFee(fee kernel.Money) error {
	if err := fee.Validate(); err != nil {
		return err
	}
	o.deliveryFee = fee
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
