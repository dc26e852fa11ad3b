package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/auth"
	"github.com/fekuna/omnipos-order-service/internal/cart"
	"github.com/fekuna/omnipos-order-service/internal/catalog"
	"github.com/fekuna/omnipos-order-service/internal/inventory"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/internal/order"
	"github.com/fekuna/omnipos-order-service/internal/order/dto"
	"github.com/fekuna/omnipos-order-service/pkg/broker"
	"github.com/fekuna/omnipos-order-service/pkg/logger"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"
)

type orderUseCase struct {
	repo     order.Repository
	carts    cart.Repository
	stock    inventory.Repository
	catalog  catalog.Repository
	tx       postgres.TxRunner
	producer broker.Producer
	logger   logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	carts cart.Repository,
	stock inventory.Repository,
	catalogRepo catalog.Repository,
	tx postgres.TxRunner,
	producer broker.Producer,
	log logger.ZapLogger,
) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		carts:    carts,
		stock:    stock,
		catalog:  catalogRepo,
		tx:       tx,
		producer: producer,
		logger:   log,
	}
}

// Place consumes the chosen cart lines into an order inside one transaction.
// Any short stock, unresolved line or foreign line aborts the whole placement
// with nothing persisted: no order, no line snapshot, no stock mutation.
func (uc *orderUseCase) Place(ctx context.Context, actor auth.Actor, input *dto.PlaceOrderInput) (*model.Order, error) {
	if len(input.CartLineIDs) == 0 {
		return nil, fmt.Errorf("%w: no cart lines selected", apperr.ErrInvalidArgument)
	}
	if strings.TrimSpace(input.ReceiverName) == "" || strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: receiver name and address are required", apperr.ErrInvalidArgument)
	}

	lineIDs := dedupe(input.CartLineIDs)

	var placed *model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		c, err := uc.carts.EnsureCart(ctx, actor.ID)
		if err != nil {
			return err
		}

		// Resolution is scoped to the caller's own cart, so a line id from
		// another member's cart fails here exactly like a missing one.
		lines, err := uc.carts.LinesByIDs(ctx, c.ID, lineIDs)
		if err != nil {
			return err
		}
		if len(lines) != len(lineIDs) {
			return fmt.Errorf("%w: one or more cart lines could not be resolved", apperr.ErrNotFound)
		}

		now := time.Now().UTC()
		o := &model.Order{
			BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			MemberID:      actor.ID,
			ReceiverName:  input.ReceiverName,
			Address:       input.Address,
			AddressDetail: input.AddressDetail,
			PostalCode:    input.PostalCode,
			Phone:         input.Phone,
			Requirement:   input.Requirement,
			PayType:       input.PayType,
			Status:        model.OrderStatusWaiting,
		}

		for _, l := range lines {
			v, err := uc.catalog.VariantByID(ctx, l.VariantID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("%w: variant %s", apperr.ErrNotFound, l.VariantID)
			}

			remaining, err := uc.stock.Decrease(ctx, l.VariantID, l.Quantity)
			if err != nil {
				return err
			}
			if err := uc.logMovement(ctx, l.VariantID, model.MovementTypeSale,
				-l.Quantity, remaining, o.ID, actor.ID, now); err != nil {
				return err
			}

			o.Lines = append(o.Lines, model.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   o.ID,
				ProductID: v.ProductID,
				VariantID: l.VariantID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice, // cart's frozen snapshot, not the live price
				CreatedAt: now,
			})
		}

		o.RecomputeTotals()
		if err := uc.repo.Create(ctx, o); err != nil {
			return err
		}
		if err := uc.carts.DeleteLines(ctx, c.ID, lineIDs); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventOrderPlaced, placed)
	return placed, nil
}

func (uc *orderUseCase) Get(ctx context.Context, actor auth.Actor, orderID string) (*model.Order, error) {
	o, err := uc.repo.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// Ownership mismatch reads as not-found so other members' orders stay
	// invisible.
	if o == nil || (!actor.IsAdmin() && o.MemberID != actor.ID) {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return o, nil
}

func (uc *orderUseCase) ListMine(ctx context.Context, actor auth.Actor, page, pageSize int) ([]model.Order, int, error) {
	return uc.repo.ListByMember(ctx, actor.ID, page, pageSize)
}

// UpdateStatus applies one admin transition. An illegal target leaves the
// status untouched; CANCELLED additionally restores the consumed stock and
// RETURNED restores it on the completed return path.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, actor auth.Actor, orderID string, target model.OrderStatus) (*model.Order, error) {
	if err := auth.Allow(auth.OpOrderUpdateStatus, actor, ""); err != nil {
		return nil, err
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperr.ErrInvalidArgument, target)
	}

	var updated *model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := uc.repo.ByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
		}
		if !order.CanTransition(o.Status, target) {
			return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, o.Status, target)
		}

		now := time.Now().UTC()
		switch target {
		case model.OrderStatusCancelled:
			if err := uc.restock(ctx, o, actor.ID, now); err != nil {
				return err
			}
			if err := uc.repo.InsertAction(ctx, &model.OrderAction{
				ID:         uuid.New().String(),
				OrderID:    o.ID,
				ActionType: model.ActionTypeCancel,
				Reason:     "cancelled by administrator",
				ActionBy:   actor.ID,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
		case model.OrderStatusReturned:
			if err := uc.restock(ctx, o, actor.ID, now); err != nil {
				return err
			}
		}

		if err := uc.repo.UpdateStatus(ctx, o.ID, target, now); err != nil {
			return err
		}
		o.Status = target
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventOrderStatusChanged, updated)
	return updated, nil
}

// Cancel is legal only while the order is still WAITING. The consumed stock
// is restored and a CANCEL action appended in the same transaction.
func (uc *orderUseCase) Cancel(ctx context.Context, actor auth.Actor, orderID string, input *dto.CancelInput) (*model.Order, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, fmt.Errorf("%w: cancel reason is required", apperr.ErrInvalidArgument)
	}

	var updated *model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := uc.repo.ByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
		}
		if err := auth.Allow(auth.OpOrderCancel, actor, o.MemberID); err != nil {
			return err
		}
		if o.Status != model.OrderStatusWaiting {
			return fmt.Errorf("%w: cannot cancel from %s", apperr.ErrInvalidTransition, o.Status)
		}

		now := time.Now().UTC()
		if err := uc.restock(ctx, o, actor.ID, now); err != nil {
			return err
		}
		if err := uc.repo.InsertAction(ctx, &model.OrderAction{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ActionType:  model.ActionTypeCancel,
			Reason:      input.Reason,
			Description: input.Description,
			ActionBy:    actor.ID,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		if err := uc.repo.UpdateStatus(ctx, o.ID, model.OrderStatusCancelled, now); err != nil {
			return err
		}

		o.Status = model.OrderStatusCancelled
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventOrderStatusChanged, updated)
	return updated, nil
}

// RequestReturn is legal only from COMPLETE and only for the order's owner.
// Stock is not touched here; it comes back when the admin path reaches
// RETURNED.
func (uc *orderUseCase) RequestReturn(ctx context.Context, actor auth.Actor, orderID string, input *dto.ReturnRequestInput) (*model.Order, error) {
	if strings.TrimSpace(input.Reason) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("%w: return reason and description are required", apperr.ErrInvalidArgument)
	}

	var updated *model.Order
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := uc.repo.ByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
		}
		if err := auth.Allow(auth.OpOrderReturn, actor, o.MemberID); err != nil {
			return err
		}
		if o.Status != model.OrderStatusComplete {
			return fmt.Errorf("%w: cannot request return from %s", apperr.ErrInvalidTransition, o.Status)
		}

		now := time.Now().UTC()
		if err := uc.repo.InsertAction(ctx, &model.OrderAction{
			ID:          uuid.New().String(),
			OrderID:     o.ID,
			ActionType:  model.ActionTypeReturn,
			Reason:      input.Reason,
			Description: input.Description,
			ActionBy:    actor.ID,
			CreatedAt:   now,
		}); err != nil {
			return err
		}
		if err := uc.repo.UpdateStatus(ctx, o.ID, model.OrderStatusReturnRequested, now); err != nil {
			return err
		}

		o.Status = model.OrderStatusReturnRequested
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, eventOrderStatusChanged, updated)
	return updated, nil
}

func (uc *orderUseCase) ListActions(ctx context.Context, actor auth.Actor, orderID string) ([]model.OrderAction, error) {
	o, err := uc.repo.ByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || (!actor.IsAdmin() && o.MemberID != actor.ID) {
		return nil, fmt.Errorf("%w: order %s", apperr.ErrNotFound, orderID)
	}
	return uc.repo.ListActions(ctx, orderID)
}

// restock reverses the stock consumed by every line of the order.
func (uc *orderUseCase) restock(ctx context.Context, o *model.Order, actorID string, now time.Time) error {
	for _, l := range o.Lines {
		remaining, err := uc.stock.Increase(ctx, l.VariantID, l.Quantity)
		if err != nil {
			return err
		}
		if err := uc.logMovement(ctx, l.VariantID, model.MovementTypeRestock,
			l.Quantity, remaining, o.ID, actorID, now); err != nil {
			return err
		}
	}
	return nil
}

func (uc *orderUseCase) logMovement(ctx context.Context, variantID, movementType string, change, after int, orderID, actorID string, now time.Time) error {
	refType := "order"
	return uc.stock.LogMovement(ctx, &model.InventoryMovement{
		ID:             uuid.New().String(),
		VariantID:      variantID,
		MovementType:   movementType,
		QuantityChange: change,
		QuantityBefore: after - change,
		QuantityAfter:  after,
		ReferenceType:  &refType,
		ReferenceID:    &orderID,
		CreatedBy:      &actorID,
		CreatedAt:      now,
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
