package product

import (
	"context"
	"fmt"
	"strings"

	"flowershop/internal/domain"
	productrepo "flowershop/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the admin-entered product fields.
type Input struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Price         int64  `json:"price"`
	Stock         int    `json:"stock"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	ImageURL      string `json:"image_url"`
	DetailContent string `json:"detail_content"`
}

func (s *Service) List(ctx context.Context, category, status string) ([]domain.Product, error) {
	return s.repo.List(ctx, productrepo.ListFilter{Category: category, Status: status})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	p, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func fromInput(in Input) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name required", domain.ErrInvalid)
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.Product{}, fmt.Errorf("%w: category required", domain.ErrInvalid)
	}
	if in.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", domain.ErrInvalid)
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.ProductOnSale
	}
	if !domain.ValidProductStatus(status) {
		return domain.Product{}, fmt.Errorf("%w: unknown product status", domain.ErrInvalid)
	}
	return domain.Product{
		Name:          name,
		Category:      strings.TrimSpace(in.Category),
		Price:         in.Price,
		Stock:         in.Stock,
		Description:   in.Description,
		Status:        status,
		ImageURL:      in.ImageURL,
		DetailContent: in.DetailContent,
	}, nil
}
