package inventory

import (
	"context"

	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

// Repository is the stock ledger. Decrease and Increase are the only paths
// that mutate a variant's stock_amount; both run against the transaction in
// ctx when one is present.
type Repository interface {
	// Decrease atomically subtracts qty as a single conditional update and
	// returns the remaining stock. Fails with ErrInsufficientStock when
	// qty exceeds the current amount, leaving stock untouched.
	Decrease(ctx context.Context, variantID string, qty int) (int, error)

	// Increase unconditionally adds qty (compensating restocks) and
	// returns the new stock amount. No upper bound is enforced.
	Increase(ctx context.Context, variantID string, qty int) (int, error)

	// Movements / Audit
	LogMovement(ctx context.Context, m *model.InventoryMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
