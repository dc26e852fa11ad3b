package dto

type AdjustStockInput struct {
	VariantID      string
	QuantityChange int // positive restock, negative correction
	Reason         string
}
