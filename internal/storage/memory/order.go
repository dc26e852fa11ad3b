package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// ---- order.Repository ----

func (s *Store) Create(ctx context.Context, o *model.Order) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	cp := *o
	cp.Lines = nil
	s.orders[o.ID] = cp
	s.lines[o.ID] = append([]model.OrderLine(nil), o.Lines...)
	return nil
}

func (s *Store) ByID(ctx context.Context, id string) (*model.Order, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := o
	cp.Lines = append([]model.OrderLine(nil), s.lines[id]...)
	return &cp, nil
}

func (s *Store) ListByMember(ctx context.Context, memberID string, page, pageSize int) ([]model.Order, int, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	var out []model.Order
	for _, o := range s.orders {
		if o.MemberID == memberID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (s *Store) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, updatedAt time.Time) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	o, ok := s.orders[orderID]
	if !ok {
		return nil
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	s.orders[orderID] = o
	return nil
}

func (s *Store) InsertAction(ctx context.Context, a *model.OrderAction) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.actions[a.OrderID] = append(s.actions[a.OrderID], *a)
	return nil
}

func (s *Store) ListActions(ctx context.Context, orderID string) ([]model.OrderAction, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	return append([]model.OrderAction(nil), s.actions[orderID]...), nil
}
