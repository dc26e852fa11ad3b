package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/inventory"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/pkg/cache"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	tx     postgres.TxRunner
	locker cache.Locker
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, tx postgres.TxRunner, locker cache.Locker, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		tx:     tx,
		locker: locker,
		logger: log,
	}
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, actor auth.Actor, input *dto.AdjustStockInput) (*model.InventoryMovement, error) {
	if err := auth.Allow(auth.OpInventoryAdjust, actor, ""); err != nil {
		return nil, err
	}
	if input.QuantityChange == 0 {
		return nil, fmt.Errorf("%w: quantity change must not be zero", apperr.ErrInvalidArgument)
	}

	// Serialize manual adjustments per variant so two admins correcting the
	// same counter don't interleave.
	lockKey := fmt.Sprintf("lock:inventory:%s", input.VariantID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, errors.New("system busy, please try again later (lock)")
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockValue)

	actorID := actor.ID
	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		VariantID:      input.VariantID,
		MovementType:   model.MovementTypeAdjustment,
		QuantityChange: input.QuantityChange,
		Notes:          input.Reason,
		CreatedBy:      &actorID,
		CreatedAt:      time.Now().UTC(),
	}

	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var remaining int
		var err error
		if input.QuantityChange > 0 {
			remaining, err = uc.repo.Increase(ctx, input.VariantID, input.QuantityChange)
		} else {
			remaining, err = uc.repo.Decrease(ctx, input.VariantID, -input.QuantityChange)
		}
		if err != nil {
			return err
		}

		movement.QuantityAfter = remaining
		movement.QuantityBefore = remaining - input.QuantityChange
		return uc.repo.LogMovement(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, actor auth.Actor, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if err := auth.Allow(auth.OpInventoryAdjust, actor, ""); err != nil {
		return nil, 0, err
	}
	return uc.repo.ListMovements(ctx, filters)
}
