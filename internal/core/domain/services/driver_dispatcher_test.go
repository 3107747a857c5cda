package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driverAt builds an approved, available driver positioned at the given
// coordinates.
func driverAt(t *testing.T, latitude, longitude float64) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), driver.VehicleScooter, "TG-1234-AB", nil)
	require.NoError(t, err)
	require.NoError(t, d.Approve())
	require.NoError(t, d.SetAvailability(true))
	position, err := kernel.NewGeoPoint(latitude, longitude)
	require.NoError(t, err)
	require.NoError(t, d.UpdatePosition(position, time.Now()))
	return d
}

func TestDriverDispatcher_SelectDriver(t *testing.T) {
	dispatcher := services.NewDriverDispatcher()
	restaurant, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	t.Run("selects_driver_within_radius_over_one_outside", func(t *testing.T) {
		// 0.03 degrees of longitude at the equator is roughly 3.3 km,
		// 0.1 degrees roughly 11 km.
		near := driverAt(t, 0, 0.03)
		far := driverAt(t, 0, 0.1)

		selected, err := dispatcher.SelectDriver(restaurant, []*driver.Driver{far, near})

		require.NoError(t, err)
		assert.True(t, near.IsEqual(selected))
	})

	t.Run("no_driver_when_all_outside_radius", func(t *testing.T) {
		far := driverAt(t, 0, 0.1)

		_, err := dispatcher.SelectDriver(restaurant, []*driver.Driver{far})

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
	})

	t.Run("prefers_the_nearest_driver", func(t *testing.T) {
		nearest := driverAt(t, 0, 0.005)
		nearer := driverAt(t, 0, 0.01)
		near := driverAt(t, 0, 0.02)

		selected, err := dispatcher.SelectDriver(restaurant, []*driver.Driver{near, nearest, nearer})

		require.NoError(t, err)
		assert.True(t, nearest.IsEqual(selected))
	})

	t.Run("skips_unavailable_drivers", func(t *testing.T) {
		busy := driverAt(t, 0, 0.01)
		require.NoError(t, busy.Reserve())

		_, err := dispatcher.SelectDriver(restaurant, []*driver.Driver{busy})

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
	})

	t.Run("skips_drivers_without_a_position", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.NewUUID(), driver.VehicleBike, "TG-1234-AB", nil)
		require.NoError(t, err)
		require.NoError(t, d.Approve())
		require.NoError(t, d.SetAvailability(true))

		_, err = dispatcher.SelectDriver(restaurant, []*driver.Driver{d})

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
	})

	t.Run("honors_driver_distance_preference_below_radius", func(t *testing.T) {
		// ~3.3 km away but the driver only accepts deliveries within 2 km.
		picky, err := driver.RestoreDriver(
			kernel.NewUUID(), driver.VehicleCar, "TG-1234-AB",
			driver.StatusApproved, true, nil, nil,
			0, 0, 0, 0, 0, nil, 2,
		)
		require.NoError(t, err)
		position, _ := kernel.NewGeoPoint(0, 0.03)
		require.NoError(t, picky.UpdatePosition(position, time.Now()))

		_, err = dispatcher.SelectDriver(restaurant, []*driver.Driver{picky})

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
	})

	t.Run("breaks_exact_distance_ties_by_lower_id", func(t *testing.T) {
		a := driverAt(t, 0, 0.01)
		b := driverAt(t, 0, 0.01)
		want := a
		if b.ID().Less(a.ID()) {
			want = b
		}

		selected, err := dispatcher.SelectDriver(restaurant, []*driver.Driver{a, b})

		require.NoError(t, err)
		assert.True(t, want.IsEqual(selected))

		// Same pool, reversed input order: the pick must not change.
		selected, err = dispatcher.SelectDriver(restaurant, []*driver.Driver{b, a})
		require.NoError(t, err)
		assert.True(t, want.IsEqual(selected))
	})

	t.Run("empty_pool_returns_no_eligible_driver", func(t *testing.T) {
		_, err := dispatcher.SelectDriver(restaurant, nil)

		require.ErrorIs(t, err, services.ErrNoEligibleDriver)
	})
}

func TestDriverDispatcher_RankEligibleDrivers(t *testing.T) {
	t.Run("ranks_nearest_first", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcher()
		restaurant, _ := kernel.NewGeoPoint(0, 0)
		near := driverAt(t, 0, 0.01)
		farther := driverAt(t, 0, 0.02)

		ranked, err := dispatcher.RankEligibleDrivers(restaurant, []*driver.Driver{farther, near})

		require.NoError(t, err)
		require.Len(t, ranked, 2)
		assert.True(t, near.IsEqual(ranked[0]))
		assert.True(t, farther.IsEqual(ranked[1]))
	})

	t.Run("custom_radius_widens_the_pool", func(t *testing.T) {
		dispatcher := services.NewDriverDispatcherWithRadius(9)
		restaurant, _ := kernel.NewGeoPoint(0, 0)
		// ~8.9 km out: beyond the default radius, within the widened one.
		far := driverAt(t, 0, 0.08)

		ranked, err := dispatcher.RankEligibleDrivers(restaurant, []*driver.Driver{far})

		require.NoError(t, err)
		assert.Len(t, ranked, 1)
	})
}
