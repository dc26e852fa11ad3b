package repository

import (
	"context"
	"database/sql"
	"errors"

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

func (r *PGRepository) CreateProduct(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (id, name, description, base_price, is_active, created_at, updated_at)
        VALUES (:id, :name, :description, :base_price, :is_active, :created_at, :updated_at)
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) ProductByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	err := r.ext(ctx).GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) UpdateProduct(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products SET
            name = :name,
            description = :description,
            base_price = :base_price,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) CreateVariant(ctx context.Context, v *model.Variant) error {
	query := `
        INSERT INTO product_variants (id, product_id, size, color, price_adjustment, stock_amount, created_at, updated_at)
        VALUES (:id, :product_id, :size, :color, :price_adjustment, :stock_amount, :created_at, :updated_at)
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, v)
	return err
}

const variantColumns = `
    v.id, v.product_id, v.size, v.color, v.price_adjustment, v.stock_amount,
    v.created_at, v.updated_at,
    p.base_price + v.price_adjustment AS unit_price
`

func (r *PGRepository) VariantByID(ctx context.Context, id string) (*model.Variant, error) {
	var v model.Variant
	query := `
        SELECT ` + variantColumns + `
        FROM product_variants v
        JOIN products p ON p.id = v.product_id
        WHERE v.id = $1
    `
	err := r.ext(ctx).GetContext(ctx, &v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) VariantsByProduct(ctx context.Context, productID string) ([]model.Variant, error) {
	var items []model.Variant
	query := `
        SELECT ` + variantColumns + `
        FROM product_variants v
        JOIN products p ON p.id = v.product_id
        WHERE v.product_id = $1
        ORDER BY v.created_at
    `
	err := r.ext(ctx).SelectContext(ctx, &items, query, productID)
	return items, err
}
