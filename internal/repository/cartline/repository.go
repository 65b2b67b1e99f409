package cartline

import (
	"context"

	"flowershop/internal/domain"
)

// Repository is the remote persistence boundary for authenticated carts:
// cart_items rows keyed by (user_id, product_id), joined to the product row
// for current display data on every read.
type Repository interface {
	// ListByUser returns the user's lines joined to the product's current
	// name, price and image, in insertion order.
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
	// Upsert inserts a line or atomically increments the quantity of an
	// existing line for the same product.
	Upsert(ctx context.Context, userID, productID string, quantity int) error
	// SetQuantity overwrites a line's quantity. A missing line is a no-op.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	// Delete removes a line. A missing line is a no-op.
	Delete(ctx context.Context, userID, productID string) error
	// Clear removes all of the user's lines.
	Clear(ctx context.Context, userID string) error
}
