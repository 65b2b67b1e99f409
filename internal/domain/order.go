package domain

import "time"

// Stored order status enum. The storefront and admin console render these
// through the Korean labels in service/order.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Order struct {
	ID              string      `json:"id"`
	OrderNo         string      `json:"order_no"`
	UserID          string      `json:"user_id"`
	Status          string      `json:"status"`
	TotalAmount     int64       `json:"total_amount"`
	ShippingFee     int64       `json:"shipping_fee"`
	RecipientName   string      `json:"recipient_name"`
	RecipientPhone  string      `json:"recipient_phone"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	DeliveryDate    *time.Time  `json:"delivery_date,omitempty"`
	DeliveryPhoto   *string     `json:"delivery_photo,omitempty"`
	ConfirmationDoc *string     `json:"confirmation_doc,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items,omitempty"`
}

// OrderItem is a denormalized snapshot of a product at order time.
type OrderItem struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	Quantity     int    `json:"quantity"`
}
