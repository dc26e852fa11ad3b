package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-order-service/internal/apperr"
	"github.com/fekuna/omnipos-order-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-order-service/internal/model"
	"github.com/fekuna/omnipos-order-service/pkg/postgres"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ext(ctx context.Context) postgres.Executor {
	return postgres.Ext(ctx, r.DB)
}

// Decrease is a single compare-and-subtract: the WHERE clause refuses the
// update when stock is short, so two concurrent decrements can never oversell
// past zero.
func (r *PGRepository) Decrease(ctx context.Context, variantID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidArgument)
	}

	query := `
        UPDATE product_variants
        SET stock_amount = stock_amount - $1, updated_at = $2
        WHERE id = $3 AND stock_amount >= $1
        RETURNING stock_amount
    `
	var remaining int
	err := r.ext(ctx).GetContext(ctx, &remaining, query, qty, time.Now().UTC(), variantID)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	// Nothing updated: distinguish a missing variant from a short one.
	var exists bool
	probe := `SELECT EXISTS (SELECT 1 FROM product_variants WHERE id = $1)`
	if err := r.ext(ctx).GetContext(ctx, &exists, probe, variantID); err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, variantID)
	}
	return 0, fmt.Errorf("%w: variant %s, requested %d", apperr.ErrInsufficientStock, variantID, qty)
}

func (r *PGRepository) Increase(ctx context.Context, variantID string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", apperr.ErrInvalidArgument)
	}

	query := `
        UPDATE product_variants
        SET stock_amount = stock_amount + $1, updated_at = $2
        WHERE id = $3
        RETURNING stock_amount
    `
	var remaining int
	err := r.ext(ctx).GetContext(ctx, &remaining, query, qty, time.Now().UTC(), variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: variant %s", apperr.ErrNotFound, variantID)
		}
		return 0, err
	}
	return remaining, nil
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	query := `
        INSERT INTO inventory_movements (
            id, variant_id, movement_type, quantity_change, quantity_before,
            quantity_after, reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (
            :id, :variant_id, :movement_type, :quantity_change, :quantity_before,
            :quantity_after, :reference_type, :reference_id, :notes, :created_by, :created_at
        )
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	var items []model.InventoryMovement
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.VariantID != "" {
		conditions = append(conditions, "variant_id = :variant_id")
		args["variant_id"] = f.VariantID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.ReferenceID != "" {
		conditions = append(conditions, "reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}
	if f.StartDate != nil {
		conditions = append(conditions, "created_at >= :start_date")
		args["start_date"] = *f.StartDate
	}
	if f.EndDate != nil {
		conditions = append(conditions, "created_at <= :end_date")
		args["end_date"] = *f.EndDate
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM inventory_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &items, args)
	return items, count, err
}
