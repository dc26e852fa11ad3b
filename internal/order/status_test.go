package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from model.OrderStatus
		to   model.OrderStatus
		want bool
	}{
		{"waiting to delivering", model.OrderStatusWaiting, model.OrderStatusDelivering, true},
		{"waiting to cancelled", model.OrderStatusWaiting, model.OrderStatusCancelled, true},
		{"waiting to complete skips delivery", model.OrderStatusWaiting, model.OrderStatusComplete, false},
		{"delivering to complete", model.OrderStatusDelivering, model.OrderStatusComplete, true},
		{"delivering to cancelled", model.OrderStatusDelivering, model.OrderStatusCancelled, false},
		{"return requested to returning", model.OrderStatusReturnRequested, model.OrderStatusReturning, true},
		{"return requested to returned skips returning", model.OrderStatusReturnRequested, model.OrderStatusReturned, false},
		{"returning to returned", model.OrderStatusReturning, model.OrderStatusReturned, true},
		{"complete is terminal for admins", model.OrderStatusComplete, model.OrderStatusDelivering, false},
		{"complete cannot be re-completed", model.OrderStatusComplete, model.OrderStatusComplete, false},
		{"cancelled is terminal", model.OrderStatusCancelled, model.OrderStatusWaiting, false},
		{"returned is terminal", model.OrderStatusReturned, model.OrderStatusRefunded, false},
		{"refunded is terminal", model.OrderStatusRefunded, model.OrderStatusWaiting, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}
