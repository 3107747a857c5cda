package order_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, unitPriceCents int64, quantity int) *order.Item {
	t.Helper()
	price, err := kernel.NewMoney(unitPriceCents)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), name, price, quantity)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []*order.Item{mustItem(t, "Attiéké poisson", 2500, 1)}
	}
	location, err := kernel.NewGeoPoint(6.1319, 1.2228)
	require.NoError(t, err)
	fee, err := kernel.NewMoney(250)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		items, fee, "12 Rue du Commerce", location, "ring twice", time.Now(),
	)
	require.NoError(t, err)
	return o
}

// advance moves the order to the wanted status along the happy path,
// assigning a driver once the order is confirmed so pickup is reachable.
func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	for o.Status() != target {
		require.NoError(t, o.Advance(time.Now()))
		if o.Status() == order.StatusConfirmed && o.DriverID() == nil {
			require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		}
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("computes_totals_from_items", func(t *testing.T) {
		// 2 x 10.00 + 1 x 5.00 = 25.00 subtotal, 2.50 tax, 2.50 fee, 30.00 total.
		o := newTestOrder(t,
			mustItem(t, "Poulet braisé", 1000, 2),
			mustItem(t, "Jus de bissap", 500, 1),
		)

		assert.Equal(t, int64(2500), o.Subtotal().Cents())
		assert.Equal(t, int64(250), o.Tax().Cents())
		assert.Equal(t, int64(250), o.DeliveryFee().Cents())
		assert.Equal(t, int64(3000), o.Total().Cents())
		assert.Equal(t, "30.00", o.Total().String())
	})

	t.Run("starts_pending_without_driver", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.ActualDeliveryTime())
		assert.Len(t, o.OrderNumber(), 8)
		require.NoError(t, order.ValidateOrderNumber(o.OrderNumber()))
	})

	t.Run("requires_at_least_one_item", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(6.1319, 1.2228)

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, 0, "12 Rue du Commerce", location, "", time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires_delivery_address", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(6.1319, 1.2228)
		items := []*order.Item{mustItem(t, "Attiéké poisson", 2500, 1)}

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			items, 0, "", location, "", time.Now(),
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestNewItem(t *testing.T) {
	t.Run("rejects_zero_quantity", func(t *testing.T) {
		price, _ := kernel.NewMoney(1000)

		_, err := order.NewItem(kernel.NewUUID(), "Poulet braisé", price, 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "", 0, 1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("subtotal_is_price_times_quantity", func(t *testing.T) {
		item := mustItem(t, "Poulet braisé", 1000, 3)

		assert.Equal(t, int64(3000), item.Subtotal().Cents())
	})
}

func TestOrder_HappyPath(t *testing.T) {
	t.Run("runs_pending_to_delivered", func(t *testing.T) {
		o := newTestOrder(t)
		deliveredAt := time.Now()

		require.NoError(t, o.Confirm())
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.MarkReady())
		require.NoError(t, o.PickUp())
		require.NoError(t, o.Deliver(deliveredAt))

		assert.Equal(t, order.StatusDelivered, o.Status())
		require.NotNil(t, o.ActualDeliveryTime())
		assert.Equal(t, deliveredAt, *o.ActualDeliveryTime())
	})

	t.Run("advance_walks_the_same_path", func(t *testing.T) {
		o := newTestOrder(t)

		advanceTo(t, o, order.StatusDelivered)

		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.NotNil(t, o.ActualDeliveryTime())
	})

	t.Run("cannot_skip_statuses", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.MarkReady()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("delivered_order_never_changes", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.StatusDelivered)

		require.ErrorIs(t, o.Advance(time.Now()), errs.ErrInvalidStateTransition)
		require.ErrorIs(t, o.Cancel(), errs.ErrInvalidStateTransition)
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("allowed_once_confirmed", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		driverID := kernel.NewUUID()

		require.NoError(t, o.AssignDriver(driverID))

		require.NotNil(t, o.DriverID())
		assert.True(t, driverID.IsEqual(*o.DriverID()))
		assert.False(t, o.IsAwaitingAssignment())
	})

	t.Run("rejected_while_pending", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AssignDriver(kernel.NewUUID())

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.False(t, o.IsAwaitingAssignment())
	})

	t.Run("rejected_when_already_assigned", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.AssignDriver(kernel.NewUUID()))

		err := o.AssignDriver(kernel.NewUUID())

		require.ErrorIs(t, err, order.ErrDriverAlreadyAssigned)
	})

	t.Run("pickup_requires_a_driver", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.MarkReady())

		err := o.PickUp()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("confirmed_unassigned_order_awaits_assignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())

		assert.True(t, o.IsAwaitingAssignment())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("pending_order_can_be_cancelled", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("confirmed_order_can_be_cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Confirm())

		require.NoError(t, o.Cancel())
		assert.Equal(t, order.StatusCancelled, o.Status())
	})

	t.Run("preparing_order_cannot_be_cancelled", func(t *testing.T) {
		o := newTestOrder(t)
		advanceTo(t, o, order.StatusPreparing)

		err := o.Cancel()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.StatusPreparing, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()
		driverID := kernel.NewUUID()
		location, _ := kernel.NewGeoPoint(6.1319, 1.2228)
		items := []*order.Item{mustItem(t, "Attiéké poisson", 2500, 1)}
		eta := time.Now().Add(25 * time.Minute)

		o, err := order.RestoreOrder(
			id, "12345678", kernel.NewUUID(), kernel.NewUUID(), &driverID,
			items, 2500, 250, 250, 3000,
			"12 Rue du Commerce", location, "", order.StatusPickedUp,
			time.Now(), &eta, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		assert.Equal(t, int64(3000), o.Total().Cents())
		require.NotNil(t, o.DriverID())
		assert.True(t, driverID.IsEqual(*o.DriverID()))
		assert.Equal(t, eta, *o.EstimatedDeliveryTime())
	})

	t.Run("rejects_malformed_order_number", func(t *testing.T) {
		location, _ := kernel.NewGeoPoint(6.1319, 1.2228)
		items := []*order.Item{mustItem(t, "Attiéké poisson", 2500, 1)}

		_, err := order.RestoreOrder(
			kernel.NewUUID(), "12AB5678", kernel.NewUUID(), kernel.NewUUID(), nil,
			items, 2500, 250, 250, 3000,
			"12 Rue du Commerce", location, "", order.StatusPending,
			time.Now(), nil, nil,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
