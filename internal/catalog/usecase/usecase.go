package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) CreateProduct(ctx context.Context, actor auth.Actor, input *dto.CreateProductInput) (*model.Product, error) {
	if err := auth.Allow(auth.OpCatalogWrite, actor, ""); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", apperr.ErrInvalidArgument)
	}
	if input.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base price must not be negative", apperr.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	p := &model.Product{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        input.Name,
		Description: &input.Description,
		BasePrice:   input.BasePrice,
		IsActive:    true,
	}

	if err := uc.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *catalogUseCase) UpdateProduct(ctx context.Context, actor auth.Actor, id string, patch *dto.ProductPatch) (*model.Product, error) {
	if err := auth.Allow(auth.OpCatalogWrite, actor, ""); err != nil {
		return nil, err
	}

	p, err := uc.repo.ProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, id)
	}

	// Apply only the present fields, re-validating each.
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: product name must not be blank", apperr.ErrInvalidArgument)
		}
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.BasePrice != nil {
		if *patch.BasePrice < 0 {
			return nil, fmt.Errorf("%w: base price must not be negative", apperr.ErrInvalidArgument)
		}
		p.BasePrice = *patch.BasePrice
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}

	p.UpdatedAt = time.Now().UTC()
	if err := uc.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *catalogUseCase) AddVariant(ctx context.Context, actor auth.Actor, input *dto.CreateVariantInput) (*model.Variant, error) {
	if err := auth.Allow(auth.OpCatalogWrite, actor, ""); err != nil {
		return nil, err
	}
	if input.StockAmount < 0 {
		return nil, fmt.Errorf("%w: stock amount must not be negative", apperr.ErrInvalidArgument)
	}

	p, err := uc.repo.ProductByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product %s", apperr.ErrNotFound, input.ProductID)
	}

	now := time.Now().UTC()
	v := &model.Variant{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:       input.ProductID,
		Size:            input.Size,
		Color:           input.Color,
		PriceAdjustment: input.PriceAdjustment,
		StockAmount:     input.StockAmount,
	}

	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	v.UnitPrice = p.BasePrice + v.PriceAdjustment
	return v, nil
}

func (uc *catalogUseCase) GetVariant(ctx context.Context, id string) (*model.Variant, error) {
	v, err := uc.repo.VariantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, id)
	}
	return v, nil
}

func (uc *catalogUseCase) ListVariants(ctx context.Context, productID string) ([]model.Variant, error) {
	return uc.repo.VariantsByProduct(ctx, productID)
}
