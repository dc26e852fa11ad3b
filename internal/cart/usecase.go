package cart

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

type UseCase interface {
	AddLine(ctx context.Context, memberID string, input *dto.AddLineInput) (*model.Cart, error)
	UpdateLineQuantity(ctx context.Context, memberID, lineID string, quantity int) (*model.Cart, error)
	RemoveLine(ctx context.Context, memberID, variantID string) error
	Clear(ctx context.Context, memberID string) error
	GetCart(ctx context.Context, memberID string) (*model.Cart, error)
}
