// Package memory is an in-memory implementation of every repository
// interface plus the transaction runner. It backs the usecase tests; the
// deployable service wires the Postgres repositories instead.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/inventory"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"
)

// Ensure interfaces
var (
	_ catalog.Repository   = (*Store)(nil)
	_ cart.Repository      = (*Store)(nil)
	_ inventory.Repository = (*Store)(nil)
	_ order.Repository     = (*Store)(nil)
	_ postgres.TxRunner    = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	products  map[string]model.Product
	variants  map[string]model.Variant
	carts     map[string]model.Cart // keyed by member id
	cartLines map[string]model.CartLine
	orders    map[string]model.Order
	lines     map[string][]model.OrderLine // keyed by order id
	actions   map[string][]model.OrderAction
	movements []model.InventoryMovement
}

func NewStore() *Store {
	return &Store{
		products:  make(map[string]model.Product),
		variants:  make(map[string]model.Variant),
		carts:     make(map[string]model.Cart),
		cartLines: make(map[string]model.CartLine),
		orders:    make(map[string]model.Order),
		lines:     make(map[string][]model.OrderLine),
		actions:   make(map[string][]model.OrderAction),
	}
}

// transaction-aware locking: operations inside WithTransaction run under the
// write lock taken by the transaction itself.
type txKey struct{}

func isTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

func (s *Store) rlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RLock()
	}
}

func (s *Store) runlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RUnlock()
	}
}

func (s *Store) wlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Lock()
	}
}

func (s *Store) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Unlock()
	}
}

// WithTransaction serializes on the write lock and snapshots the whole store
// so a failing fn rolls back every mutation it made.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	ctx = context.WithValue(ctx, txKey{}, true)
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	products  map[string]model.Product
	variants  map[string]model.Variant
	carts     map[string]model.Cart
	cartLines map[string]model.CartLine
	orders    map[string]model.Order
	lines     map[string][]model.OrderLine
	actions   map[string][]model.OrderAction
	movements []model.InventoryMovement
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		products:  copyMap(s.products),
		variants:  copyMap(s.variants),
		carts:     copyMap(s.carts),
		cartLines: copyMap(s.cartLines),
		orders:    copyMap(s.orders),
		lines:     copySliceMap(s.lines),
		actions:   copySliceMap(s.actions),
		movements: append([]model.InventoryMovement(nil), s.movements...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.variants = snap.variants
	s.carts = snap.carts
	s.cartLines = snap.cartLines
	s.orders = snap.orders
	s.lines = snap.lines
	s.actions = snap.actions
	s.movements = snap.movements
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySliceMap[V any](m map[string][]V) map[string][]V {
	out := make(map[string][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}

// ---- catalog.Repository ----

func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.products[p.ID] = *p
	return nil
}

func (s *Store) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *model.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	if _, ok := s.products[p.ID]; !ok {
		return fmt.Errorf("%w: product %s", apperr.ErrNotFound, p.ID)
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) CreateVariant(ctx context.Context, v *model.Variant) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.variants[v.ID] = *v
	return nil
}

func (s *Store) VariantByID(ctx context.Context, id string) (*model.Variant, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	v, ok := s.variants[id]
	if !ok {
		return nil, nil
	}
	cp := v
	if p, ok := s.products[v.ProductID]; ok {
		cp.UnitPrice = p.BasePrice + v.PriceAdjustment
	}
	return &cp, nil
}

func (s *Store) VariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	var out []model.Variant
	for _, v := range s.variants {
		if v.ProductID != productID {
			continue
		}
		cp := v
		if p, ok := s.products[v.ProductID]; ok {
			cp.UnitPrice = p.BasePrice + v.PriceAdjustment
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
