package wishlist

import "errors"

var (
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrItemNotFound     = errors.New("wishlist item not found")
	ErrNameRequired     = errors.New("wishlist name is required")
)
