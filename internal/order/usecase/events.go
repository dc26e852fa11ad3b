package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-order-service/internal/model"
)

const (
	eventOrderPlaced        = "OrderPlaced"
	eventOrderStatusChanged = "OrderStatusChanged"
)

type orderEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	Payload   orderEventPayload `json:"payload"`
	Timestamp time.Time         `json:"timestamp"`
}

type orderEventPayload struct {
	ID         string             `json:"id"`
	MemberID   string             `json:"member_id"`
	Status     model.OrderStatus  `json:"status"`
	TotalPrice int64              `json:"total_price"`
	TotalCount int                `json:"total_count"`
	Items      []orderEventItem   `json:"items"`
}

type orderEventItem struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// publishEvent emits a lifecycle event after the transaction has committed.
// Publication is best effort: a broker failure is logged, never surfaced to
// the caller, since the state change is already durable.
func (uc *orderUseCase) publishEvent(ctx context.Context, eventType string, o *model.Order) {
	items := make([]orderEventItem, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = orderEventItem{ProductID: l.ProductID, VariantID: l.VariantID, Quantity: l.Quantity}
	}

	event := orderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload: orderEventPayload{
			ID:         o.ID,
			MemberID:   o.MemberID,
			Status:     o.Status,
			TotalPrice: o.TotalPrice,
			TotalCount: o.TotalCount,
			Items:      items,
		},
		Timestamp: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}
	if err := uc.producer.Publish(ctx, o.ID, value); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", o.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
