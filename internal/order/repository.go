package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

const orderColumns = `id, email, first_name, last_name, address, apartment, city, state, zip_code, phone,
        subtotal, discount_code, discount_amount, shipping_cost, tax, total, status, payment_method_id,
        created_at, updated_at`

const itemColumns = `id, order_id, product_id, product_name, product_image, size, quantity, price`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (Order, error) {
	var o Order
	err := s.Scan(
		&o.ID, &o.Email, &o.FirstName, &o.LastName, &o.Address, &o.Apartment, &o.City, &o.State, &o.ZipCode, &o.Phone,
		&o.Subtotal, &o.DiscountCode, &o.DiscountAmount, &o.ShippingCost, &o.Tax, &o.Total, &o.Status, &o.PaymentMethodID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *repo) Create(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		o.ID, o.Email, o.FirstName, o.LastName, o.Address, o.Apartment, o.City, o.State, o.ZipCode, o.Phone,
		o.Subtotal, o.DiscountCode, o.DiscountAmount, o.ShippingCost, o.Tax, o.Total, string(o.Status), o.PaymentMethodID,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_items (`+itemColumns+`, line_no)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.ProductImage, it.Size, it.Quantity, it.Price, i+1,
		)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+`
         FROM orders WHERE id = $1`,
		orderID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	orders := []Order{o}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *repo) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+`
         FROM orders WHERE lower(email) = lower($1) ORDER BY created_at DESC`,
		email,
	)
}

func (r *repo) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	return r.query(ctx,
		`SELECT `+orderColumns+`
         FROM orders
         WHERE ($1 = '' OR status = $1)
           AND ($2 = '' OR id ILIKE '%' || $2 || '%' OR email ILIKE '%' || $2 || '%'
                OR (first_name || ' ' || last_name) ILIKE '%' || $2 || '%')
         ORDER BY created_at DESC`,
		string(filter.Status), filter.Search,
	)
}

func (r *repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), orderID,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) query(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems fills Items for all orders with a single query.
func (r *repo) loadItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
		orders[i].Items = []Item{}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+`
         FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		var orderID string
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.ProductName, &it.ProductImage, &it.Size, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order_item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}
