package cart

import (
	"context"

	"flowershop/internal/domain"
)

// remoteStore persists lines as cart_items rows scoped to one user. Display
// data is never stored here; Load re-joins the product table so the cart
// always shows the current price. Store failures propagate to the caller.
type remoteStore struct {
	repo   lineRepo
	userID string
}

func (s *remoteStore) Load(ctx context.Context) ([]domain.CartLine, error) {
	return s.repo.ListByUser(ctx, s.userID)
}

func (s *remoteStore) UpsertLine(ctx context.Context, p ProductInfo, quantity int) error {
	return s.repo.Upsert(ctx, s.userID, p.ID, quantity)
}

func (s *remoteStore) SetQuantity(ctx context.Context, productID string, quantity int) error {
	return s.repo.SetQuantity(ctx, s.userID, productID, quantity)
}

func (s *remoteStore) DeleteLine(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, s.userID, productID)
}

func (s *remoteStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx, s.userID)
}
