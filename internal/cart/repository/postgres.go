package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

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

func (r *PGRepository) EnsureCart(ctx context.Context, memberID string) (*model.Cart, error) {
	now := time.Now().UTC()
	insert := `
        INSERT INTO carts (id, member_id, created_at, updated_at)
        VALUES ($1, $2, $3, $3)
        ON CONFLICT (member_id) DO NOTHING
    `
	if _, err := r.ext(ctx).ExecContext(ctx, insert, uuid.New().String(), memberID, now); err != nil {
		return nil, err
	}

	var c model.Cart
	err := r.ext(ctx).GetContext(ctx, &c, `SELECT * FROM carts WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) LinesByCart(ctx context.Context, cartID string) ([]model.CartLine, error) {
	var lines []model.CartLine
	query := `SELECT * FROM cart_lines WHERE cart_id = $1 ORDER BY created_at`
	err := r.ext(ctx).SelectContext(ctx, &lines, query, cartID)
	return lines, err
}

func (r *PGRepository) LineByID(ctx context.Context, lineID string) (*model.CartLine, error) {
	var line model.CartLine
	err := r.ext(ctx).GetContext(ctx, &line, `SELECT * FROM cart_lines WHERE id = $1`, lineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *PGRepository) LinesByIDs(ctx context.Context, cartID string, lineIDs []string) ([]model.CartLine, error) {
	if len(lineIDs) == 0 {
		return []model.CartLine{}, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM cart_lines WHERE cart_id = ? AND id IN (?)`, cartID, lineIDs)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var lines []model.CartLine
	err = r.ext(ctx).SelectContext(ctx, &lines, query, args...)
	return lines, err
}

func (r *PGRepository) UpsertLine(ctx context.Context, line *model.CartLine) error {
	// Merge-or-insert in one statement: the quantity accumulates, the price
	// snapshot re-syncs to the incoming (current catalog) price.
	query := `
        INSERT INTO cart_lines (id, cart_id, variant_id, quantity, unit_price, created_at, updated_at)
        VALUES (:id, :cart_id, :variant_id, :quantity, :unit_price, :created_at, :updated_at)
        ON CONFLICT (cart_id, variant_id)
        DO UPDATE SET
            quantity = cart_lines.quantity + EXCLUDED.quantity,
            unit_price = EXCLUDED.unit_price,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, line)
	return err
}

func (r *PGRepository) UpdateLine(ctx context.Context, line *model.CartLine) error {
	query := `
        UPDATE cart_lines SET
            quantity = :quantity,
            unit_price = :unit_price,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, line)
	return err
}

func (r *PGRepository) DeleteLineByVariant(ctx context.Context, cartID, variantID string) error {
	_, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM cart_lines WHERE cart_id = $1 AND variant_id = $2`, cartID, variantID)
	return err
}

func (r *PGRepository) DeleteLines(ctx context.Context, cartID string, lineIDs []string) error {
	if len(lineIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM cart_lines WHERE cart_id = ? AND id IN (?)`, cartID, lineIDs)
	if err != nil {
		return err
	}
	query = r.DB.Rebind(query)

	_, err = r.ext(ctx).ExecContext(ctx, query, args...)
	return err
}

func (r *PGRepository) Clear(ctx context.Context, cartID string) error {
	_, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = $1`, cartID)
	return err
}
