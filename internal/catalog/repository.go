package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id string, in ProductInput) (Product, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `id, name, description, price, image, images, category, era, rot,
	style, color, brand, sizes, stock, is_active, created_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Images, &p.Category, &p.Era, &p.Rot,
		&p.Style, &p.Color, &p.Brand, &p.Sizes, &p.Stock, &p.IsActive, &p.CreatedAt,
	)
	return p, err
}

// ListActive returns the storefront catalog in its stored order.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE is_active ORDER BY position, created_at`)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in ProductInput) (Product, error) {
	in = in.Normalized()
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, image, images, category, era, rot,
			style, color, brand, sizes, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+productColumns,
		in.Name, in.Description, in.Price, in.Image, in.Images, in.Category, in.Era, in.Rot,
		in.Style, in.Color, in.Brand, in.Sizes, in.Stock, in.IsActive,
	))
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	in = in.Normalized()
	p, err := scanProduct(r.pool.QueryRow(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4, image=$5, images=$6, category=$7,
			era=$8, rot=$9, style=$10, color=$11, brand=$12, sizes=$13, stock=$14, is_active=$15,
			updated_at=now()
		WHERE id=$1
		RETURNING `+productColumns,
		id, in.Name, in.Description, in.Price, in.Image, in.Images, in.Category,
		in.Era, in.Rot, in.Style, in.Color, in.Brand, in.Sizes, in.Stock, in.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active=$2, updated_at=now() WHERE id=$1`, id, active)
	if err != nil {
		return fmt.Errorf("set product %s active: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
