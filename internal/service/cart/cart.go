package cart

import (
	"context"
	"errors"
	"fmt"

	"flowershop/internal/domain"
)

// ErrInvalidQuantity is returned when Add is called with a non-positive
// quantity. SetQuantity never returns it; quantities below one remove the
// line instead.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Cart is a loaded per-actor session. It is not safe for concurrent use;
// open one session per request.
type Cart struct {
	store lineStore
	lines []domain.CartLine
}

// Items returns the current lines in insertion order. The slice is a copy.
func (c *Cart) Items() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Reload replaces the in-memory line set from the store.
func (c *Cart) Reload(ctx context.Context) error {
	lines, err := c.store.Load(ctx)
	if err != nil {
		c.lines = nil
		return err
	}
	c.lines = lines
	return nil
}

// Add puts quantity units of the product into the cart. Adding a product
// that is already present increments its line instead of duplicating it.
func (c *Cart) Add(ctx context.Context, p ProductInfo, quantity int) error {
	if p.ID == "" {
		return fmt.Errorf("%w: product id required", domain.ErrInvalid)
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := c.store.UpsertLine(ctx, p, quantity); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Remove deletes the line for the product. A product that is not in the
// cart is a no-op, not an error.
func (c *Cart) Remove(ctx context.Context, productID string) error {
	if err := c.store.DeleteLine(ctx, productID); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// SetQuantity overwrites the line's quantity. Anything below one removes
// the line; a zero-quantity line is never persisted.
func (c *Cart) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return c.Remove(ctx, productID)
	}
	if err := c.store.SetQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Clear removes every line for this actor.
func (c *Cart) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	return c.Reload(ctx)
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.ProductPrice * int64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities, used for the cart badge.
func (c *Cart) Count() int {
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}
