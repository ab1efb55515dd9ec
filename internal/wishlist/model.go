package wishlist

type Wishlist struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
}

type WishlistDetail struct {
	ID         string `json:"id"`
	WishlistID string `json:"wishlist_id"`
	ProductID  string `json:"product_id"`
}

type CreateParams struct {
	Name string `json:"name"`
}

type EditParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemParams struct {
	WishlistID string `json:"wishlist_id"`
	ProductID  string `json:"product_id"`
}
