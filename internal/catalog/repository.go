package catalog

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// Repository is the catalog read/write surface. Reads return (nil, nil) when
// the row does not exist; the caller decides whether that is an error.
// Variant queries carry the computed live unit price
// (base_price + price_adjustment).
type Repository interface {
	CreateProduct(ctx context.Context, p *model.Product) error
	ProductByID(ctx context.Context, id string) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error

	CreateVariant(ctx context.Context, v *model.Variant) error
	VariantByID(ctx context.Context, id string) (*model.Variant, error)
	VariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error)
}
