package model

import "time"

type OrderStatus string

const (
	OrderStatusWaiting         OrderStatus = "WAITING"
	OrderStatusDelivering      OrderStatus = "DELIVERING"
	OrderStatusComplete        OrderStatus = "COMPLETE"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusReturnRequested OrderStatus = "RETURN_REQUESTED"
	OrderStatusReturning       OrderStatus = "RETURNING"
	OrderStatusReturned        OrderStatus = "RETURNED"
	OrderStatusRefunded        OrderStatus = "REFUNDED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusWaiting, OrderStatusDelivering, OrderStatusComplete,
		OrderStatusCancelled, OrderStatusReturnRequested, OrderStatusReturning,
		OrderStatusReturned, OrderStatusRefunded:
		return true
	}
	return false
}

type ActionType string

const (
	ActionTypeCancel ActionType = "CANCEL"
	ActionTypeReturn ActionType = "RETURN"
)

// Order is an immutable-after-creation snapshot of the cart lines chosen at
// placement. Shipping fields, line snapshots and totals are frozen at
// creation; only Status changes afterwards, and only through the state
// machine.
type Order struct {
	BaseModel
	MemberID      string      `db:"member_id" json:"member_id"`
	ReceiverName  string      `db:"receiver_name" json:"receiver_name"`
	Address       string      `db:"address" json:"address"`
	AddressDetail string      `db:"address_detail" json:"address_detail"`
	PostalCode    string      `db:"postal_code" json:"postal_code"`
	Phone         string      `db:"phone" json:"phone"`
	Requirement   string      `db:"requirement" json:"requirement"`
	TotalPrice    int64       `db:"total_price" json:"total_price"`
	TotalCount    int         `db:"total_count" json:"total_count"`
	PayType       string      `db:"pay_type" json:"pay_type"` // Opaque tag, never processed
	Status        OrderStatus `db:"status" json:"status"`
	Lines         []OrderLine `db:"-" json:"lines"` // Joined data
}

// RecomputeTotals derives TotalPrice and TotalCount from the attached lines.
func (o *Order) RecomputeTotals() {
	var price int64
	var count int
	for _, l := range o.Lines {
		price += l.UnitPrice * int64(l.Quantity)
		count += l.Quantity
	}
	o.TotalPrice = price
	o.TotalCount = count
}

// OrderLine is the frozen copy of a cart line at order time. UnitPrice is
// the price actually paid; it may diverge from the variant's live catalog
// price and that divergence is preserved for display and audit.
type OrderLine struct {
	ID        string    `db:"id" json:"id"`
	OrderID   string    `db:"order_id" json:"order_id"`
	ProductID string    `db:"product_id" json:"product_id"`
	VariantID string    `db:"variant_id" json:"variant_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	UnitPrice int64     `db:"unit_price" json:"unit_price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OrderAction is one append-only audit row for a cancel or return. Rows are
// never updated or deleted, and survive their order.
type OrderAction struct {
	ID          string     `db:"id" json:"id"`
	OrderID     string     `db:"order_id" json:"order_id"`
	ActionType  ActionType `db:"action_type" json:"action_type"`
	Reason      string     `db:"reason" json:"reason"`
	Description string     `db:"description" json:"description"`
	ActionBy    string     `db:"action_by" json:"action_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
