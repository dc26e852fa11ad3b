package catalog

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, actor auth.Actor, input *dto.CreateProductInput) (*model.Product, error)
	UpdateProduct(ctx context.Context, actor auth.Actor, id string, patch *dto.ProductPatch) (*model.Product, error)
	AddVariant(ctx context.Context, actor auth.Actor, input *dto.CreateVariantInput) (*model.Variant, error)
	GetVariant(ctx context.Context, id string) (*model.Variant, error)
	ListVariants(ctx context.Context, productID string) ([]model.Variant, error)
}
