package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/cart/dto"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type cartUseCase struct {
	repo    cart.Repository
	catalog catalog.Repository
	logger  logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, catalogRepo catalog.Repository, log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		repo:    repo,
		catalog: catalogRepo,
		logger:  log,
	}
}

// AddLine merges into an existing line for the same variant or inserts a new
// one. The stored unit price re-syncs to the current catalog price on every
// add; no stock is checked or held because the cart is not a reservation.
func (uc *cartUseCase) AddLine(ctx context.Context, memberID string, input *dto.AddLineInput) (*model.Cart, error) {
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrInvalidArgument)
	}

	v, err := uc.catalog.VariantByID(ctx, input.VariantID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, input.VariantID)
	}

	c, err := uc.repo.EnsureCart(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	line := &model.CartLine{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CartID:    c.ID,
		VariantID: v.ID,
		Quantity:  input.Quantity,
		UnitPrice: v.UnitPrice,
	}
	if err := uc.repo.UpsertLine(ctx, line); err != nil {
		return nil, err
	}

	return uc.loadCart(ctx, c)
}

// UpdateLineQuantity overwrites (does not add to) the stored quantity. A line
// id belonging to another member's cart is reported as not found.
func (uc *cartUseCase) UpdateLineQuantity(ctx context.Context, memberID, lineID string, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrInvalidArgument)
	}

	c, err := uc.repo.EnsureCart(ctx, memberID)
	if err != nil {
		return nil, err
	}

	line, err := uc.repo.LineByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.CartID != c.ID {
		return nil, fmt.Errorf("%w: cart line %s", apperr.ErrNotFound, lineID)
	}

	line.Quantity = quantity
	line.UpdatedAt = time.Now().UTC()
	if err := uc.repo.UpdateLine(ctx, line); err != nil {
		return nil, err
	}

	return uc.loadCart(ctx, c)
}

// RemoveLine is idempotent: removing an absent variant is not an error.
func (uc *cartUseCase) RemoveLine(ctx context.Context, memberID, variantID string) error {
	c, err := uc.repo.EnsureCart(ctx, memberID)
	if err != nil {
		return err
	}
	return uc.repo.DeleteLineByVariant(ctx, c.ID, variantID)
}

func (uc *cartUseCase) Clear(ctx context.Context, memberID string) error {
	c, err := uc.repo.EnsureCart(ctx, memberID)
	if err != nil {
		return err
	}
	return uc.repo.Clear(ctx, c.ID)
}

func (uc *cartUseCase) GetCart(ctx context.Context, memberID string) (*model.Cart, error) {
	c, err := uc.repo.EnsureCart(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return uc.loadCart(ctx, c)
}

func (uc *cartUseCase) loadCart(ctx context.Context, c *model.Cart) (*model.Cart, error) {
	lines, err := uc.repo.LinesByCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Lines = lines
	return c, nil
}
