package cart

import "time"

type CartItem struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AddItemParams struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type EditItemParams struct {
	CartID   string `json:"cart_id"`
	Quantity int    `json:"quantity"`
}
