package order

import (
	"slices"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// adminTransitions is the admin-driven status table. Absent states
// (COMPLETE, CANCELLED, RETURNED, REFUNDED) accept no transition at all;
// the member-driven cancel and return-request paths are separate, narrower
// operations and are not expressed here.
var adminTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusWaiting:         {model.OrderStatusDelivering, model.OrderStatusCancelled},
	model.OrderStatusDelivering:      {model.OrderStatusComplete},
	model.OrderStatusReturnRequested: {model.OrderStatusReturning},
	model.OrderStatusReturning:       {model.OrderStatusReturned},
}

func CanTransition(from, to model.OrderStatus) bool {
	next, ok := adminTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(next, to)
}
