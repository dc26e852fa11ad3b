package order

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order/dto"
)

type UseCase interface {
	// Place runs the all-or-nothing consolidation: resolve the chosen cart
	// lines, consume stock, snapshot the order, drop the consumed lines.
	Place(ctx context.Context, actor auth.Actor, input *dto.PlaceOrderInput) (*model.Order, error)

	Get(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error)
	ListMine(ctx context.Context, actor auth.Actor, page, pageSize int) ([]model.Order, int, error)

	// UpdateStatus applies one admin-driven transition from the table.
	UpdateStatus(ctx context.Context, actor auth.Actor, orderID string, target model.OrderStatus) (*model.Order, error)
	// Cancel is the member-facing cancel, legal only from WAITING.
	Cancel(ctx context.Context, actor auth.Actor, orderID string, input *dto.CancelInput) (*model.Order, error)
	// RequestReturn is the member-facing return request, legal only from COMPLETE.
	RequestReturn(ctx context.Context, actor auth.Actor, orderID string, input *dto.ReturnRequestInput) (*model.Order, error)

	ListActions(ctx context.Context, actor auth.Actor, orderID string) ([]model.OrderAction, error)
}
