package model

// Cart is created lazily on a member's first add. It expresses purchase
// intent only; no stock is held by cart lines.
type Cart struct {
	BaseModel
	MemberID string     `db:"member_id" json:"member_id"`
	Lines    []CartLine `db:"-" json:"lines"` // Joined data
}

// CartLine holds at most one entry per (cart, variant). UnitPrice is a
// snapshot of the catalog price taken when the line was created or last
// merged, not a live read.
type CartLine struct {
	BaseModel
	CartID    string `db:"cart_id" json:"cart_id"`
	VariantID string `db:"variant_id" json:"variant_id"`
	Quantity  int    `db:"quantity" json:"quantity"`
	UnitPrice int64  `db:"unit_price" json:"unit_price"`
}

// TotalPrice is always derived, never stored.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}
