package product

import "time"

type Product struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Price             int64     `json:"price"`
	QuantityAvailable int       `json:"quantity_available"`
	CategoryID        *string   `json:"category_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Category struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
}

type CreateProductParams struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Price             int64   `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	CategoryID        *string `json:"category_id"`
}

type EditProductParams struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Price             *int64  `json:"price"`
	QuantityAvailable *int    `json:"quantity_available"`
	CategoryID        *string `json:"category_id"`
}
