package domain

// CartLine is one product's presence in a cart. For logged-in actors the
// display fields are re-joined against the product row on every load; for
// guest actors they are frozen at add-time.
type CartLine struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	ProductImage string `json:"product_image,omitempty"`
	Quantity     int    `json:"quantity"`
}
