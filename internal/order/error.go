package order

import "errors"

var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrShippingProviderNotFound = errors.New("shipping provider not found")
	ErrCartEmpty                = errors.New("cart is empty")
	ErrProductLookup            = errors.New("failed to get products")
	ErrAmountMismatch           = errors.New("payment amount does not match order total amount")
	ErrOrderNotPayable          = errors.New("order is not in a payable state")
	ErrOrderFinal               = errors.New("order already cancelled")
	ErrUnauthorized             = errors.New("user is not authorized for this order")
)
