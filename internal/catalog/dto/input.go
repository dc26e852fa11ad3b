package dto

type CreateProductInput struct {
	Name        string
	Description string
	BasePrice   int64
}

// ProductPatch carries partial updates: a nil field means "no change".
// Each present field is re-validated before it is applied.
type ProductPatch struct {
	Name        *string
	Description *string
	BasePrice   *int64
	IsActive    *bool
}

type CreateVariantInput struct {
	ProductID       string
	Size            string
	Color           string
	PriceAdjustment int64
	StockAmount     int
}
