package cart

import (
	"context"

	"flowershop/internal/domain"
)

// ProductInfo is the product descriptor the storefront passes when adding a
// line. The guest strategy freezes it into the line; the logged-in strategy
// only uses the id and re-joins display data on load.
type ProductInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url"`
}

// lineStore is the narrow port both persistence strategies implement. One
// store instance is bound to exactly one actor.
type lineStore interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	UpsertLine(ctx context.Context, p ProductInfo, quantity int) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	DeleteLine(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

// slot is a single string-keyed blob read and written wholesale, the shape
// of the guest-side persistence boundary.
type slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}
