package model

type Product struct {
	BaseModel
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	BasePrice   int64     `db:"base_price" json:"base_price"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Variants    []Variant `db:"-" json:"variants,omitempty"` // Joined data
}

// Variant is the unit stock is tracked against: one purchasable
// size/color combination of a product. StockAmount is mutated only by the
// inventory ledger and is never allowed to go negative.
type Variant struct {
	BaseModel
	ProductID       string `db:"product_id" json:"product_id"`
	Size            string `db:"size" json:"size"`
	Color           string `db:"color" json:"color"`
	PriceAdjustment int64  `db:"price_adjustment" json:"price_adjustment"`
	StockAmount     int    `db:"stock_amount" json:"stock_amount"`
	UnitPrice       int64  `db:"unit_price" json:"unit_price"` // Computed: base_price + price_adjustment
}
