package tenant

import "time"

type Tenant struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTenantParams struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

type EditTenantParams struct {
	OwnerID *string `json:"owner_id"`
	Name    *string `json:"name"`
}
