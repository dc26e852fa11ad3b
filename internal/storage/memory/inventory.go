package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
)

// ---- inventory.Repository ----

func (s *Store) Decrease(ctx context.Context, variantID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidArgument)
	}

	s.wlock(ctx)
	defer s.wunlock(ctx)

	v, ok := s.variants[variantID]
	if !ok {
		return 0, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, variantID)
	}
	if v.StockAmount < qty {
		return 0, fmt.Errorf("%w: variant %s, requested %d", apperr.ErrInsufficientStock, variantID, qty)
	}
	v.StockAmount -= qty
	v.UpdatedAt = time.Now().UTC()
	s.variants[variantID] = v
	return v.StockAmount, nil
}

func (s *Store) Increase(ctx context.Context, variantID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidArgument)
	}

	s.wlock(ctx)
	defer s.wunlock(ctx)

	v, ok := s.variants[variantID]
	if !ok {
		return 0, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, variantID)
	}
	v.StockAmount += qty
	v.UpdatedAt = time.Now().UTC()
	s.variants[variantID] = v
	return v.StockAmount, nil
}

func (s *Store) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.movements = append(s.movements, *m)
	return nil
}

func (s *Store) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	var out []model.InventoryMovement
	for _, m := range s.movements {
		if f.VariantID != "" && m.VariantID != f.VariantID {
			continue
		}
		if f.MovementType != "" && m.MovementType != f.MovementType {
			continue
		}
		if f.ReferenceID != "" && (m.ReferenceID == nil || *m.ReferenceID != f.ReferenceID) {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}
