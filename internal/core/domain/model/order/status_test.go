package order_test

import (
	"fmt"
	"testing"

	"topup/internal/core/domain/model/order"
	"topup/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.AwaitingReview))
	assert.Equal(t, 3, int(order.Confirmed))
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.AwaitingReview, order.Confirmed} {
			require.NoError(t, status.Validate(), status.String())
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(4), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_StringAndParse(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.Pending, "pending"},
		{order.AwaitingReview, "awaiting_review"},
		{order.Confirmed, "confirmed"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.String())

			parsed, err := order.ParseStatus(tc.expected)
			require.NoError(t, err)
			assert.Equal(t, tc.status, parsed)
		})
	}

	t.Run("should return unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(42).String())
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "waiting", "Confirmed"} {
			_, err := order.ParseStatus(s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})
}

func TestStatus_SubmitProof(t *testing.T) {
	t.Run("should allow from pending and awaiting review", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.AwaitingReview} {
			next, err := from.SubmitProof()

			require.NoError(t, err)
			assert.Equal(t, order.AwaitingReview, next)
		}
	})

	t.Run("should reject from confirmed and unknown", func(t *testing.T) {
		for _, from := range []order.Status{order.Confirmed, order.Unknown} {
			next, err := from.SubmitProof()

			require.ErrorIs(t, err, errs.ErrConflict)
			assert.Equal(t, order.Unknown, next)
			assert.Contains(t, err.Error(), "is not a valid status to submit a proof")
		}
	})
}

func TestStatus_Confirm(t *testing.T) {
	t.Run("should allow from awaiting review", func(t *testing.T) {
		next, err := order.AwaitingReview.Confirm()

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, next)
	})

	t.Run("should reject every other status", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Confirmed, order.Unknown} {
			_, err := from.Confirm()

			require.ErrorIs(t, err, errs.ErrConflict, from.String())
		}
	})
}

func TestStatus_ValidateCanHaveProof(t *testing.T) {
	testCases := []struct {
		status   order.Status
		hasProof bool
		valid    bool
	}{
		{order.Pending, false, true},
		{order.Pending, true, false},
		{order.AwaitingReview, true, true},
		{order.AwaitingReview, false, false},
		{order.Confirmed, true, true},
		{order.Confirmed, false, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s/proof=%t", tc.status, tc.hasProof), func(t *testing.T) {
			err := tc.status.ValidateCanHaveProof(tc.hasProof)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.AwaitingReview.IsTerminal())
	assert.True(t, order.Confirmed.IsTerminal())
}
