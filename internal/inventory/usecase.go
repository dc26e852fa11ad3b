package inventory

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

type UseCase interface {
	// Adjust is the manual admin correction/restock path. Order placement
	// and cancellation mutate stock through the Repository directly, inside
	// their own transactions.
	Adjust(ctx context.Context, actor auth.Actor, input *dto.AdjustStockInput) (*model.InventoryMovement, error)
	ListMovements(ctx context.Context, actor auth.Actor, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
