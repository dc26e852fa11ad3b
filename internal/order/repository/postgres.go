package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	orderQuery := `
        INSERT INTO orders (
            id, member_id, receiver_name, address, address_detail, postal_code,
            phone, requirement, total_price, total_count, pay_type, status,
            created_at, updated_at
        )
        VALUES (
            :id, :member_id, :receiver_name, :address, :address_detail, :postal_code,
            :phone, :requirement, :total_price, :total_count, :pay_type, :status,
            :created_at, :updated_at
        )
    `
	if _, err := r.ext(ctx).NamedExecContext(ctx, orderQuery, o); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if len(o.Lines) == 0 {
		return nil
	}
	lineQuery := `
        INSERT INTO order_lines (id, order_id, product_id, variant_id, quantity, unit_price, created_at)
        VALUES (:id, :order_id, :product_id, :variant_id, :quantity, :unit_price, :created_at)
    `
	if _, err := r.ext(ctx).NamedExecContext(ctx, lineQuery, o.Lines); err != nil {
		return fmt.Errorf("failed to insert order lines: %w", err)
	}
	return nil
}

func (r *PGRepository) ByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := r.ext(ctx).GetContext(ctx, &o, `SELECT * FROM orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var lines []model.OrderLine
	err = r.ext(ctx).SelectContext(ctx, &lines,
		`SELECT * FROM order_lines WHERE order_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

func (r *PGRepository) ListByMember(ctx context.Context, memberID string, page, pageSize int) ([]model.Order, int, error) {
	var count int
	err := r.ext(ctx).GetContext(ctx, &count,
		`SELECT count(*) FROM orders WHERE member_id = $1`, memberID)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM orders WHERE member_id = $1 ORDER BY created_at DESC`
	args := []interface{}{memberID}
	if pageSize > 0 {
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)
	}

	var orders []model.Order
	err = r.ext(ctx).SelectContext(ctx, &orders, query, args...)
	return orders, count, err
}

func (r *PGRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, updatedAt time.Time) error {
	_, err := r.ext(ctx).ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, orderID)
	return err
}

func (r *PGRepository) InsertAction(ctx context.Context, a *model.OrderAction) error {
	query := `
        INSERT INTO order_actions (id, order_id, action_type, reason, description, action_by, created_at)
        VALUES (:id, :order_id, :action_type, :reason, :description, :action_by, :created_at)
    `
	_, err := r.ext(ctx).NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) ListActions(ctx context.Context, orderID string) ([]model.OrderAction, error) {
	var actions []model.OrderAction
	err := r.ext(ctx).SelectContext(ctx, &actions,
		`SELECT * FROM order_actions WHERE order_id = $1 ORDER BY created_at`, orderID)
	return actions, err
}
