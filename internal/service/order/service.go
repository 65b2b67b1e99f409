package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flowershop/internal/domain"
	orderrepo "flowershop/internal/repository/order"
	"github.com/google/uuid"
)

// Service records checkout snapshots as orders and serves the storefront
// and admin order views.
type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// PlaceInput carries the checkout shipping form.
type PlaceInput struct {
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
	ShippingFee     int64  `json:"shipping_fee"`
}

// Place converts the cart snapshot into one persisted order plus its item
// rows. Orders start as pending; no payment is taken here.
func (s *Service) Place(ctx context.Context, userID string, lines []domain.CartLine, in PlaceInput) (*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user required", domain.ErrInvalid)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrInvalid)
	}
	if strings.TrimSpace(in.RecipientName) == "" ||
		strings.TrimSpace(in.RecipientPhone) == "" ||
		strings.TrimSpace(in.ShippingAddress) == "" {
		return nil, fmt.Errorf("%w: recipient name, phone and address required", domain.ErrInvalid)
	}
	if in.ShippingFee < 0 {
		return nil, fmt.Errorf("%w: shipping fee must not be negative", domain.ErrInvalid)
	}

	var total int64
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		total += l.ProductPrice * int64(l.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductPrice: l.ProductPrice,
			Quantity:     l.Quantity,
		})
	}

	return s.repo.Create(ctx, domain.Order{
		OrderNo:         newOrderNo(),
		UserID:          userID,
		Status:          domain.OrderPending,
		TotalAmount:     total + in.ShippingFee,
		ShippingFee:     in.ShippingFee,
		RecipientName:   strings.TrimSpace(in.RecipientName),
		RecipientPhone:  strings.TrimSpace(in.RecipientPhone),
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		Notes:           in.Notes,
		Items:           items,
	})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatusLabel accepts the Korean admin-console label and stores the
// corresponding enum value.
func (s *Service) UpdateStatusLabel(ctx context.Context, id, label string) error {
	return s.repo.UpdateStatus(ctx, id, StatusForLabel(label))
}

// Cancel marks the order cancelled; it stays out of the sales aggregates.
func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, domain.OrderCancelled)
}

func (s *Service) UpdateDelivery(ctx context.Context, id string, in orderrepo.DeliveryUpdate) error {
	return s.repo.UpdateDelivery(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// DailySales returns per-day order counts and revenue for one calendar day.
func (s *Service) DailySales(ctx context.Context, day time.Time) ([]orderrepo.SalesBucket, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.repo.SalesByDay(ctx, start, start.AddDate(0, 0, 1))
}

// MonthlySales returns per-month order counts and revenue for one year.
func (s *Service) MonthlySales(ctx context.Context, year int) ([]orderrepo.SalesBucket, error) {
	return s.repo.SalesByMonth(ctx, year)
}

func newOrderNo() string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return "ORD-" + time.Now().UTC().Format("20060102") + "-" + suffix
}
