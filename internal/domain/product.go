package domain

import "time"

// Product status vocabulary as shown in the storefront.
const (
	ProductOnSale       = "판매중"
	ProductSoldOut      = "품절"
	ProductDiscontinued = "판매중지"
)

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         int64     `json:"price"`
	Stock         int       `json:"stock"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	ImageURL      string    `json:"image_url,omitempty"`
	DetailContent string    `json:"detail_content,omitempty"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// ValidProductStatus reports whether s is one of the storefront statuses.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductOnSale, ProductSoldOut, ProductDiscontinued:
		return true
	}
	return false
}
