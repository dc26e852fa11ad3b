package dto

import "time"

type MovementFilters struct {
	VariantID    string
	MovementType string
	ReferenceID  string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}
