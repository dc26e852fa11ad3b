package cart

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

type Repository interface {
	// EnsureCart returns the member's cart, creating it on first use.
	EnsureCart(ctx context.Context, memberID string) (*model.Cart, error)

	LinesByCart(ctx context.Context, cartID string) ([]model.CartLine, error)
	LineByID(ctx context.Context, lineID string) (*model.CartLine, error)
	// LinesByIDs resolves line ids scoped to one cart; ids belonging to a
	// different cart simply do not resolve.
	LinesByIDs(ctx context.Context, cartID string, lineIDs []string) ([]model.CartLine, error)

	// UpsertLine inserts the line. When the (cart, variant) pair already
	// exists it adds the quantity onto the stored line and overwrites its
	// unit price with the incoming snapshot.
	UpsertLine(ctx context.Context, line *model.CartLine) error
	UpdateLine(ctx context.Context, line *model.CartLine) error
	DeleteLineByVariant(ctx context.Context, cartID, variantID string) error
	DeleteLines(ctx context.Context, cartID string, lineIDs []string) error
	Clear(ctx context.Context, cartID string) error
}
