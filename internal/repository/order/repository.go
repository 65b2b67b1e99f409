package order

import (
	"context"
	"time"

	"flowershop/internal/domain"
)

// DeliveryUpdate carries the admin-entered delivery artifacts. Nil fields
// are left untouched.
type DeliveryUpdate struct {
	DeliveryDate    *time.Time
	DeliveryPhoto   *string
	ConfirmationDoc *string
}

// SalesBucket is one row of a sales aggregate: a day or a month plus the
// order count and revenue recorded in it.
type SalesBucket struct {
	Period  string `json:"period"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type Repository interface {
	// Create inserts the order and its item rows in one transaction.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateDelivery(ctx context.Context, id string, in DeliveryUpdate) error
	Delete(ctx context.Context, id string) error
	SalesByDay(ctx context.Context, from, to time.Time) ([]SalesBucket, error)
	SalesByMonth(ctx context.Context, year int) ([]SalesBucket, error)
}
