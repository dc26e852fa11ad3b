package dto

type AddLineInput struct {
	VariantID string
	Quantity  int
}
