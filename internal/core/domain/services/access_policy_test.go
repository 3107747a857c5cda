package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/driver"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderParties struct {
	order      *order.Order
	customer   services.Actor
	restaurant services.Actor
	driver     services.Actor
	admin      services.Actor
	stranger   services.Actor
}

func newOrderParties(t *testing.T) orderParties {
	t.Helper()
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	price, err := kernel.NewMoney(2500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Attiéké poisson", price, 1)
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(6.1319, 1.2228)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), customerID, restaurantID,
		[]*order.Item{item}, 250, "12 Rue du Commerce", location, "", time.Now(),
	)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())
	require.NoError(t, o.AssignDriver(driverID))

	return orderParties{
		order:      o,
		customer:   services.Actor{ID: customerID, Role: services.RoleCustomer},
		restaurant: services.Actor{ID: restaurantID, Role: services.RoleRestaurant},
		driver:     services.Actor{ID: driverID, Role: services.RoleDriver},
		admin:      services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin},
		stranger:   services.Actor{ID: kernel.NewUUID(), Role: services.RoleCustomer},
	}
}

func TestAccessPolicy_CanViewOrder(t *testing.T) {
	policy := services.NewAccessPolicy()
	p := newOrderParties(t)

	t.Run("parties_to_the_order_may_view_it", func(t *testing.T) {
		for _, actor := range []services.Actor{p.customer, p.restaurant, p.driver, p.admin} {
			assert.NoError(t, policy.CanViewOrder(actor, p.order))
		}
	})

	t.Run("strangers_may_not", func(t *testing.T) {
		err := policy.CanViewOrder(p.stranger, p.order)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("another_driver_may_not", func(t *testing.T) {
		other := services.Actor{ID: kernel.NewUUID(), Role: services.RoleDriver}

		require.ErrorIs(t, policy.CanViewOrder(other, p.order), errs.ErrAuthorization)
	})
}

func TestAccessPolicy_CanCancelOrder(t *testing.T) {
	policy := services.NewAccessPolicy()
	p := newOrderParties(t)

	t.Run("only_the_ordering_customer_may_cancel", func(t *testing.T) {
		assert.NoError(t, policy.CanCancelOrder(p.customer, p.order))
		assert.NoError(t, policy.CanCancelOrder(p.admin, p.order))
	})

	t.Run("restaurant_and_driver_may_not_cancel", func(t *testing.T) {
		require.ErrorIs(t, policy.CanCancelOrder(p.restaurant, p.order), errs.ErrAuthorization)
		require.ErrorIs(t, policy.CanCancelOrder(p.driver, p.order), errs.ErrAuthorization)
	})
}

func TestAccessPolicy_CanAdvanceOrder(t *testing.T) {
	policy := services.NewAccessPolicy()

	t.Run("restaurant_advances_kitchen_stages", func(t *testing.T) {
		p := newOrderParties(t)

		assert.NoError(t, policy.CanAdvanceOrder(p.restaurant, p.order))
		require.ErrorIs(t, policy.CanAdvanceOrder(p.driver, p.order), errs.ErrAuthorization)
	})

	t.Run("driver_advances_delivery_stages", func(t *testing.T) {
		p := newOrderParties(t)
		require.NoError(t, p.order.StartPreparing())
		require.NoError(t, p.order.MarkReady())

		assert.NoError(t, policy.CanAdvanceOrder(p.driver, p.order))
		require.ErrorIs(t, policy.CanAdvanceOrder(p.restaurant, p.order), errs.ErrAuthorization)
	})

	t.Run("admin_advances_anything", func(t *testing.T) {
		p := newOrderParties(t)

		assert.NoError(t, policy.CanAdvanceOrder(p.admin, p.order))
	})
}

func TestAccessPolicy_CanSubmitRating(t *testing.T) {
	policy := services.NewAccessPolicy()
	p := newOrderParties(t)

	assert.NoError(t, policy.CanSubmitRating(p.customer, p.order))
	require.ErrorIs(t, policy.CanSubmitRating(p.stranger, p.order), errs.ErrAuthorization)
	require.ErrorIs(t, policy.CanSubmitRating(p.driver, p.order), errs.ErrAuthorization)
}

func TestAccessPolicy_DriverChecks(t *testing.T) {
	policy := services.NewAccessPolicy()
	restaurantID := kernel.NewUUID()
	managed, err := driver.NewDriver(kernel.NewUUID(), driver.VehicleBike, "TG-1234-AB", &restaurantID)
	require.NoError(t, err)
	independent, err := driver.NewDriver(kernel.NewUUID(), driver.VehicleCar, "TG-5678-CD", nil)
	require.NoError(t, err)

	restaurant := services.Actor{ID: restaurantID, Role: services.RoleRestaurant}
	admin := services.Actor{ID: kernel.NewUUID(), Role: services.RoleAdmin}
	self := services.Actor{ID: managed.ID(), Role: services.RoleDriver}

	t.Run("managing_restaurant_manages_its_drivers", func(t *testing.T) {
		assert.NoError(t, policy.CanManageDriver(restaurant, managed))
		require.ErrorIs(t, policy.CanManageDriver(restaurant, independent), errs.ErrAuthorization)
	})

	t.Run("only_admins_manage_independent_drivers", func(t *testing.T) {
		assert.NoError(t, policy.CanManageDriver(admin, independent))
	})

	t.Run("drivers_act_only_as_themselves", func(t *testing.T) {
		assert.NoError(t, policy.CanActAsDriver(self, managed))
		require.ErrorIs(t, policy.CanActAsDriver(self, independent), errs.ErrAuthorization)
		require.ErrorIs(t, policy.CanActAsDriver(restaurant, managed), errs.ErrAuthorization)
	})

	t.Run("availability_also_flippable_by_the_managing_restaurant", func(t *testing.T) {
		assert.NoError(t, policy.CanSetDriverAvailability(self, managed))
		assert.NoError(t, policy.CanSetDriverAvailability(restaurant, managed))
		assert.NoError(t, policy.CanSetDriverAvailability(admin, independent))
		require.ErrorIs(t, policy.CanSetDriverAvailability(restaurant, independent), errs.ErrAuthorization)
	})

	t.Run("statistics_visible_to_self_manager_and_admin", func(t *testing.T) {
		assert.NoError(t, policy.CanViewDriverStatistics(self, managed))
		assert.NoError(t, policy.CanViewDriverStatistics(restaurant, managed))
		assert.NoError(t, policy.CanViewDriverStatistics(admin, independent))
		stranger := services.Actor{ID: kernel.NewUUID(), Role: services.RoleCustomer}
		require.ErrorIs(t, policy.CanViewDriverStatistics(stranger, managed), errs.ErrAuthorization)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("rejects_unknown_role", func(t *testing.T) {
		_, err := services.NewActor(kernel.NewUUID(), services.Role("superuser"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unconstructed_id", func(t *testing.T) {
		_, err := services.NewActor(kernel.UUID{}, services.RoleAdmin)

		require.Error(t, err)
	})
}
