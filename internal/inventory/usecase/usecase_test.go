package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/inventory"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/storage/memory"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
)

// fakeLocker always grants the lock; lock behavior itself is redis's concern.
type fakeLocker struct{}

func (fakeLocker) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (fakeLocker) ReleaseLock(ctx context.Context, key, value string) error {
	return nil
}

var (
	admin  = auth.Actor{ID: "admin-1", Role: auth.RoleAdmin}
	member = auth.Actor{ID: "member-1", Role: auth.RoleMember}
)

func setup(t *testing.T) (*memory.Store, inventory.UseCase, string) {
	t.Helper()
	store := memory.NewStore()
	uc := NewInventoryUseCase(store, store, fakeLocker{}, logger.NewNop())

	ctx := context.Background()
	now := time.Now().UTC()
	productID := uuid.New().String()
	require.NoError(t, store.CreateProduct(ctx, &model.Product{
		BaseModel: model.BaseModel{ID: productID, CreatedAt: now, UpdatedAt: now},
		Name:      "resistance band",
		BasePrice: 40,
		IsActive:  true,
	}))
	variantID := uuid.New().String()
	require.NoError(t, store.CreateVariant(ctx, &model.Variant{
		BaseModel:   model.BaseModel{ID: variantID, CreatedAt: now, UpdatedAt: now},
		ProductID:   productID,
		Size:        "one-size",
		Color:       "green",
		StockAmount: 10,
	}))
	return store, uc, variantID
}

func TestAdjustRequiresAdmin(t *testing.T) {
	_, uc, variantID := setup(t)

	_, err := uc.Adjust(context.Background(), member, &dto.AdjustStockInput{
		VariantID:      variantID,
		QuantityChange: 5,
		Reason:         "recount",
	})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAdjustRestocksAndLogsMovement(t *testing.T) {
	ctx := context.Background()
	store, uc, variantID := setup(t)

	m, err := uc.Adjust(ctx, admin, &dto.AdjustStockInput{
		VariantID:      variantID,
		QuantityChange: 5,
		Reason:         "supplier delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, m.QuantityBefore)
	assert.Equal(t, 15, m.QuantityAfter)
	assert.Equal(t, model.MovementTypeAdjustment, m.MovementType)

	v, err := store.VariantByID(ctx, variantID)
	require.NoError(t, err)
	assert.Equal(t, 15, v.StockAmount)

	movements, total, err := uc.ListMovements(ctx, admin, &dto.MovementFilters{VariantID: variantID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "supplier delivery", movements[0].Notes)
}

func TestAdjustRejectsNegativeBeyondStock(t *testing.T) {
	ctx := context.Background()
	store, uc, variantID := setup(t)

	_, err := uc.Adjust(ctx, admin, &dto.AdjustStockInput{
		VariantID:      variantID,
		QuantityChange: -11,
		Reason:         "shrinkage",
	})
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)

	v, err := store.VariantByID(ctx, variantID)
	require.NoError(t, err)
	assert.Equal(t, 10, v.StockAmount, "failed adjustment must leave stock untouched")

	_, err = uc.Adjust(ctx, admin, &dto.AdjustStockInput{
		VariantID:      variantID,
		QuantityChange: 0,
		Reason:         "noop",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
