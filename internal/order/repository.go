package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

type Repository interface {
	// Create persists the order together with its line snapshots.
	Create(ctx context.Context, o *model.Order) error
	// ByID returns the order with lines attached, or (nil, nil).
	ByID(ctx context.Context, id string) (*model.Order, error)
	ListByMember(ctx context.Context, memberID string, page, pageSize int) ([]model.Order, int, error)

	// UpdateStatus touches only the status column; everything else on an
	// order is frozen at creation.
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, updatedAt time.Time) error

	// Actions are append-only; there is no update or delete path.
	InsertAction(ctx context.Context, a *model.OrderAction) error
	ListActions(ctx context.Context, orderID string) ([]model.OrderAction, error)
}
