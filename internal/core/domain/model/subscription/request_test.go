package subscription_test

import (
	"testing"
	"time"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/model/subscription"
	"mealmarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingRequest(t *testing.T, monthlyPrice int64) *subscription.Request {
	t.Helper()
	r, err := subscription.NewRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		monthlyPrice, "18:00-20:00",
	)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("created_pending", func(t *testing.T) {
		r := newPendingRequest(t, 1200)

		assert.Equal(t, subscription.Pending, r.Status())
		assert.Equal(t, int64(1200), r.MonthlyPrice())
		assert.Equal(t, "18:00-20:00", r.DeliveryWindow())
		assert.Nil(t, r.ConfirmedAt())
		assert.Nil(t, r.CancelledAt())
		assert.Empty(t, r.CancellationReason())
		require.NoError(t, r.Validate())
	})

	t.Run("requires_positive_price", func(t *testing.T) {
		_, err := subscription.NewRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires_constructed_ids", func(t *testing.T) {
		var missing kernel.UUID
		_, err := subscription.NewRequest(
			missing, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 100, "")
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var r subscription.Request
		require.ErrorIs(t, r.Validate(), subscription.ErrRequestIsNotConstructed)
	})
}

func TestRequest_Approve(t *testing.T) {
	t.Run("pending_request_activates", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		now := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

		require.NoError(t, r.Approve(now))

		assert.Equal(t, subscription.Active, r.Status())
		require.NotNil(t, r.ConfirmedAt())
		assert.Equal(t, now, *r.ConfirmedAt())
	})

	t.Run("second_approve_fails_already_processed", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		require.NoError(t, r.Approve(time.Now()))

		err := r.Approve(time.Now())
		require.ErrorIs(t, err, subscription.ErrAlreadyProcessed)

		var processed *subscription.AlreadyProcessedError
		require.ErrorAs(t, err, &processed)
		assert.Equal(t, subscription.Active, processed.Status)
	})

	t.Run("approve_after_reject_fails_with_cancelled_status", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		require.NoError(t, r.Reject("full", time.Now()))

		err := r.Approve(time.Now())
		var processed *subscription.AlreadyProcessedError
		require.ErrorAs(t, err, &processed)
		assert.Equal(t, subscription.Cancelled, processed.Status)
	})
}

func TestRequest_Reject(t *testing.T) {
	t.Run("records_reason_and_timestamp", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		now := time.Date(2025, 8, 14, 12, 0, 0, 0, time.UTC)

		require.NoError(t, r.Reject("kitchen at capacity", now))

		assert.Equal(t, subscription.Cancelled, r.Status())
		require.NotNil(t, r.CancelledAt())
		assert.Equal(t, now, *r.CancelledAt())
		assert.Equal(t, "kitchen at capacity", r.CancellationReason())
	})

	t.Run("empty_reason_defaults", func(t *testing.T) {
		r := newPendingRequest(t, 1200)

		require.NoError(t, r.Reject("", time.Now()))
		assert.Equal(t, subscription.DefaultRejectionReason, r.CancellationReason())
	})

	t.Run("second_reject_fails_already_processed", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		require.NoError(t, r.Reject("", time.Now()))

		err := r.Reject("again", time.Now())
		require.ErrorIs(t, err, subscription.ErrAlreadyProcessed)
		assert.Equal(t, subscription.DefaultRejectionReason, r.CancellationReason())
	})

	t.Run("reject_after_approve_fails", func(t *testing.T) {
		r := newPendingRequest(t, 1200)
		require.NoError(t, r.Approve(time.Now()))

		err := r.Reject("too late", time.Now())
		require.ErrorIs(t, err, subscription.ErrAlreadyProcessed)
		assert.Equal(t, subscription.Active, r.Status())
	})
}

func TestRequest_IsOlderThan(t *testing.T) {
	r := newPendingRequest(t, 1200)

	assert.False(t, r.IsOlderThan(time.Now().UTC().Add(-time.Hour)))
	assert.True(t, r.IsOlderThan(time.Now().UTC().Add(time.Hour)))
}

func TestRestoreRequest(t *testing.T) {
	t.Run("restores_terminal_state", func(t *testing.T) {
		confirmedAt := time.Now().UTC().Add(-time.Hour)
		createdAt := confirmedAt.Add(-24 * time.Hour)

		r, err := subscription.RestoreRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			subscription.Active, 900, "12:00-14:00",
			&confirmedAt, nil, "", createdAt, 2,
		)
		require.NoError(t, err)
		assert.Equal(t, subscription.Active, r.Status())
		assert.Equal(t, int64(2), r.Version())
		assert.Equal(t, createdAt, r.CreatedAt())
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := subscription.RestoreRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			subscription.Unknown, 900, "", nil, nil, "", time.Now(), 0,
		)
		require.Error(t, err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("string_names", func(t *testing.T) {
		assert.Equal(t, "Pending", subscription.Pending.String())
		assert.Equal(t, "Active", subscription.Active.String())
		assert.Equal(t, "Cancelled", subscription.Cancelled.String())
		assert.Equal(t, "Unknown", subscription.Unknown.String())
	})

	t.Run("terminality", func(t *testing.T) {
		assert.False(t, subscription.Pending.IsTerminal())
		assert.True(t, subscription.Active.IsTerminal())
		assert.True(t, subscription.Cancelled.IsTerminal())
	})

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, subscription.Pending.Validate())
		require.Error(t, subscription.Unknown.Validate())
		require.Error(t, subscription.Status(9).Validate())
	})
}
