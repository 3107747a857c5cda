package order_test

import (
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("parses_valid_statuses", func(t *testing.T) {
		for name, want := range map[string]order.Status{
			"pending":   order.StatusPending,
			"confirmed": order.StatusConfirmed,
			"preparing": order.StatusPreparing,
			"ready":     order.StatusReady,
			"picked_up": order.StatusPickedUp,
			"delivered": order.StatusDelivered,
			"cancelled": order.StatusCancelled,
		} {
			got, err := order.StatusFromString(name)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		_, err := order.StatusFromString("shipped")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "picked_up", order.StatusPickedUp.String())
	assert.Equal(t, "unknown", order.StatusUnknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.StatusDelivered.IsTerminal())
	assert.True(t, order.StatusCancelled.IsTerminal())
	assert.False(t, order.StatusPending.IsTerminal())
	assert.False(t, order.StatusPickedUp.IsTerminal())
}

func TestStatus_Next(t *testing.T) {
	t.Run("walks_the_happy_path", func(t *testing.T) {
		path := []order.Status{
			order.StatusPending,
			order.StatusConfirmed,
			order.StatusPreparing,
			order.StatusReady,
			order.StatusPickedUp,
			order.StatusDelivered,
		}

		for i := 0; i < len(path)-1; i++ {
			next, err := path[i].Next()
			require.NoError(t, err)
			assert.Equal(t, path[i+1], next)
		}
	})

	t.Run("terminal_statuses_have_no_next", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusDelivered, order.StatusCancelled} {
			_, err := s.Next()
			require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("allowed_from_pending_and_confirmed", func(t *testing.T) {
		for _, s := range []order.Status{order.StatusPending, order.StatusConfirmed} {
			got, err := s.Cancel()
			require.NoError(t, err)
			assert.Equal(t, order.StatusCancelled, got)
		}
	})

	t.Run("rejected_once_preparation_started", func(t *testing.T) {
		for _, s := range []order.Status{
			order.StatusPreparing,
			order.StatusReady,
			order.StatusPickedUp,
			order.StatusDelivered,
			order.StatusCancelled,
		} {
			_, err := s.Cancel()
			require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		}
	})
}
