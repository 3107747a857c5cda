package errs_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationError(t *testing.T) {
	t.Run("NewAuthorizationError", func(t *testing.T) {
		err := errs.NewAuthorizationError("update_position")

		assert.Equal(t, "update_position", err.Action)
		require.NoError(t, err.Cause)
		assert.Equal(t, "authorization failed: update_position", err.Error())
		assert.Equal(t, errs.ErrAuthorization, err.Unwrap())
	})

	t.Run("NewAuthorizationErrorWithCause", func(t *testing.T) {
		cause := errors.New("actor is not the assigned driver")
		err := errs.NewAuthorizationErrorWithCause("record_position", cause)

		assert.Equal(t, "record_position", err.Action)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"authorization failed: record_position (cause: actor is not the assigned driver)",
			err.Error())
		assert.Equal(t, errs.ErrAuthorization, err.Unwrap())
	})
}

func TestInvalidStateTransitionError(t *testing.T) {
	t.Run("NewInvalidStateTransitionError", func(t *testing.T) {
		err := errs.NewInvalidStateTransitionError("order", "delivered", "cancelled")

		assert.Equal(t, "order", err.Entity)
		assert.Equal(t, "delivered", err.From)
		assert.Equal(t, "cancelled", err.To)
		require.NoError(t, err.Cause)
		assert.Equal(t, "invalid state transition: order from delivered to cancelled", err.Error())
		assert.Equal(t, errs.ErrInvalidStateTransition, err.Unwrap())
	})

	t.Run("NewInvalidStateTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("terminal state")
		err := errs.NewInvalidStateTransitionErrorWithCause("order", "cancelled", "confirmed", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"invalid state transition: order from cancelled to confirmed (cause: terminal state)",
			err.Error())
	})
}

func TestDomainErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with domain errors", func(t *testing.T) {
		authErr := errs.NewAuthorizationError("cancel_order")
		require.ErrorIs(t, authErr, errs.ErrAuthorization)

		transitionErr := errs.NewInvalidStateTransitionError("order", "delivered", "pending")
		require.ErrorIs(t, transitionErr, errs.ErrInvalidStateTransition)
	})
}
