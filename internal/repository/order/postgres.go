package order

import (
	"context"
	"errors"
	"time"

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

const orderColumns = `id::text, order_no, user_id::text, status, total_amount, shipping_fee,
recipient_name, recipient_phone, shipping_address, COALESCE(payment_method, ''), COALESCE(notes, ''),
delivery_date, delivery_photo, confirmation_doc, created_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (order_no, user_id, status, total_amount, shipping_fee,
                    recipient_name, recipient_phone, shipping_address, payment_method, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''))
RETURNING ` + orderColumns
	var out domain.Order
	err = scanOrder(tx.QueryRow(ctx, q,
		o.OrderNo, o.UserID, o.Status, o.TotalAmount, o.ShippingFee,
		o.RecipientName, o.RecipientPhone, o.ShippingAddress, o.PaymentMethod, o.Notes,
	), &out)
	if err != nil {
		r.logger.Error("insert order", zap.String("order_no", o.OrderNo), zap.Error(err))
		return nil, err
	}

	for _, item := range o.Items {
		const itemQ = `
INSERT INTO order_items (order_id, product_id, product_name, product_price, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
		var itemID string
		if err := tx.QueryRow(ctx, itemQ, out.ID, item.ProductID, item.ProductName, item.ProductPrice, item.Quantity).Scan(&itemID); err != nil {
			r.logger.Error("insert order item", zap.String("order_id", out.ID), zap.Error(err))
			return nil, err
		}
		item.ID = itemID
		item.OrderID = out.ID
		out.Items = append(out.Items, item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, q, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.fetchItems(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("update order status", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateDelivery(ctx context.Context, id string, in DeliveryUpdate) error {
	const q = `
UPDATE orders
SET delivery_date    = COALESCE($2, delivery_date),
    delivery_photo   = COALESCE($3, delivery_photo),
    confirmation_doc = COALESCE($4, confirmation_doc)
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id, in.DeliveryDate, in.DeliveryPhoto, in.ConfirmationDoc)
	if err != nil {
		r.logger.Error("update order delivery", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]SalesBucket, error) {
	const q = `
SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*), COALESCE(SUM(total_amount), 0)
FROM orders
WHERE created_at >= $1 AND created_at < $2 AND status <> 'cancelled'
GROUP BY created_at::date
ORDER BY created_at::date
`
	return r.buckets(ctx, q, from, to)
}

func (r *postgresRepo) SalesByMonth(ctx context.Context, year int) ([]SalesBucket, error) {
	const q = `
SELECT to_char(date_trunc('month', created_at), 'YYYY-MM'), COUNT(*), COALESCE(SUM(total_amount), 0)
FROM orders
WHERE EXTRACT(YEAR FROM created_at) = $1 AND status <> 'cancelled'
GROUP BY date_trunc('month', created_at)
ORDER BY date_trunc('month', created_at)
`
	return r.buckets(ctx, q, year)
}

func (r *postgresRepo) buckets(ctx context.Context, q string, args ...any) ([]SalesBucket, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("sales aggregate", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []SalesBucket
	for rows.Next() {
		var b SalesBucket
		if err := rows.Scan(&b.Period, &b.Orders, &b.Revenue); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("list orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []string
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.fetchItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	const q = `
SELECT id::text, order_id::text, product_id, product_name, product_price, quantity
FROM order_items
WHERE order_id = ANY($1)
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductPrice, &it.Quantity); err != nil {
			return nil, err
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNo, &o.UserID, &o.Status, &o.TotalAmount, &o.ShippingFee,
		&o.RecipientName, &o.RecipientPhone, &o.ShippingAddress, &o.PaymentMethod, &o.Notes,
		&o.DeliveryDate, &o.DeliveryPhoto, &o.ConfirmationDoc, &o.CreatedAt,
	)
}
