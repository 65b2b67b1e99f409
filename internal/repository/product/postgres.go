package product

import (
	"context"
	"errors"

	"flowershop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id, name, category, price, stock, COALESCE(description, ''), status, COALESCE(image_url, ''), COALESCE(detail_content, ''), registered_at`

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category = $1)
  AND ($2 = '' OR status = $2)
ORDER BY registered_at DESC
`
	rows, err := r.pool.Query(ctx, q, f.Category, f.Status)
	if err != nil {
		r.logger.Error("list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p domain.Product
	if err := scanProduct(r.pool.QueryRow(ctx, q, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("get product", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Create assigns the next "P001"-style id unless one was supplied.
func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, category, price, stock, description, status, image_url, detail_content)
VALUES (
    COALESCE(NULLIF($1, ''),
        'P' || LPAD((COALESCE((SELECT MAX(SUBSTRING(id FROM 2)::int) FROM products WHERE id ~ '^P[0-9]+$'), 0) + 1)::text, 3, '0')),
    $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, '')
)
RETURNING ` + productColumns
	var out domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.Status, p.ImageURL, p.DetailContent,
	), &out)
	if err != nil {
		r.logger.Error("create product", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2, category = $3, price = $4, stock = $5,
    description = NULLIF($6, ''), status = $7,
    image_url = NULLIF($8, ''), detail_content = NULLIF($9, '')
WHERE id = $1
RETURNING ` + productColumns
	var out domain.Product
	err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.Name, p.Category, p.Price, p.Stock, p.Description, p.Status, p.ImageURL, p.DetailContent,
	), &out)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("update product", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("delete product", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock,
		&p.Description, &p.Status, &p.ImageURL, &p.DetailContent, &p.RegisteredAt,
	)
}
