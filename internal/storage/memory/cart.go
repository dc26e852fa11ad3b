package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

// ---- cart.Repository ----

func (s *Store) EnsureCart(ctx context.Context, memberID string) (*model.Cart, error) {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	if c, ok := s.carts[memberID]; ok {
		cp := c
		return &cp, nil
	}

	now := time.Now().UTC()
	c := model.Cart{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MemberID:  memberID,
	}
	s.carts[memberID] = c
	cp := c
	return &cp, nil
}

func (s *Store) LinesByCart(ctx context.Context, cartID string) ([]model.CartLine, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	var out []model.CartLine
	for _, l := range s.cartLines {
		if l.CartID == cartID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) LineByID(ctx context.Context, lineID string) (*model.CartLine, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	l, ok := s.cartLines[lineID]
	if !ok {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (s *Store) LinesByIDs(ctx context.Context, cartID string, lineIDs []string) ([]model.CartLine, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)

	out := []model.CartLine{}
	for _, id := range lineIDs {
		if l, ok := s.cartLines[id]; ok && l.CartID == cartID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Store) UpsertLine(ctx context.Context, line *model.CartLine) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	for id, l := range s.cartLines {
		if l.CartID == line.CartID && l.VariantID == line.VariantID {
			l.Quantity += line.Quantity
			l.UnitPrice = line.UnitPrice
			l.UpdatedAt = line.UpdatedAt
			s.cartLines[id] = l
			return nil
		}
	}
	s.cartLines[line.ID] = *line
	return nil
}

func (s *Store) UpdateLine(ctx context.Context, line *model.CartLine) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	s.cartLines[line.ID] = *line
	return nil
}

func (s *Store) DeleteLineByVariant(ctx context.Context, cartID, variantID string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	for id, l := range s.cartLines {
		if l.CartID == cartID && l.VariantID == variantID {
			delete(s.cartLines, id)
		}
	}
	return nil
}

func (s *Store) DeleteLines(ctx context.Context, cartID string, lineIDs []string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	for _, id := range lineIDs {
		if l, ok := s.cartLines[id]; ok && l.CartID == cartID {
			delete(s.cartLines, id)
		}
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, cartID string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)

	for id, l := range s.cartLines {
		if l.CartID == cartID {
			delete(s.cartLines, id)
		}
	}
	return nil
}
