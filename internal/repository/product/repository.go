package product

import (
	"context"

	"flowershop/internal/domain"
)

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	Category string
	Status   string
}

type Repository interface {
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
