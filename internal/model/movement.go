package model

import "time"

const (
	MovementTypeSale       = "sale"
	MovementTypeRestock    = "restock"
	MovementTypeAdjustment = "adjustment"
)

// InventoryMovement records every ledger mutation with the stock level
// before and after, so the movement history per variant always balances
// against the live stock amount.
type InventoryMovement struct {
	ID             string    `db:"id" json:"id"`
	VariantID      string    `db:"variant_id" json:"variant_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
