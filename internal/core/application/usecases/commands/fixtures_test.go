package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func geoPoint(t *testing.T, latitude, longitude float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(latitude, longitude)
	require.NoError(t, err)
	return p
}

// makeOrder builds an order for one customer with a single 25.00 item line
// and a 2.50 delivery fee, advanced to the wanted status. A driver is
// attached as soon as the path passes confirmed.
func makeOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	price, err := kernel.NewMoney(2500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Attiéké poisson", price, 1)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]*order.Item{item}, 250, "12 Rue du Commerce", geoPoint(t, 6.1319, 1.2228), "", time.Now(),
	)
	require.NoError(t, err)

	for o.Status() != status {
		require.NoError(t, o.Advance(time.Now()))
		if o.Status() == order.StatusConfirmed && o.DriverID() == nil && status != order.StatusConfirmed {
			require.NoError(t, o.AssignDriver(kernel.NewUUID()))
		}
	}
	return o
}

// makeAvailableDriver builds an approved, available driver at the given
// coordinates.
func makeAvailableDriver(t *testing.T, latitude, longitude float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), driver.VehicleScooter, "TG-1234-AB", nil)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	require.NoError(t, d.SetAvailability(true))
	require.NoError(t, d.UpdatePosition(geoPoint(t, latitude, longitude), time.Now()))
	return d
}

func customerActor(o *order.Order) services.Actor {
	return services.Actor{ID: o.CustomerID(), Role: services.RoleCustomer}
}

func restaurantSnapshot(t *testing.T, id kernel.UUID, open bool) ports.RestaurantSnapshot {
	t.Helper()
	fee, err := kernel.NewMoney(250)
	require.NoError(t, err)
	return ports.RestaurantSnapshot{
		ID:          id,
		Name:        "Chez Maman",
		Location:    geoPoint(t, 6.1319, 1.2228),
		DeliveryFee: fee,
		IsOpen:      open,
	}
}
