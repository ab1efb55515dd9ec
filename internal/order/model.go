package order

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

// Final reports whether no further transition is allowed from the status.
func (s Status) Final() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// ShippingProviders is the set of accepted carriers.
var ShippingProviders = map[string]bool{
	"JNE":          true,
	"TIKI":         true,
	"SICEPAT":      true,
	"GOSEND":       true,
	"GRAB_EXPRESS": true,
}

type Order struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	UserID           string    `json:"user_id"`
	OrderDate        time.Time `json:"order_date"`
	TotalAmount      int64     `json:"total_amount"`
	OrderStatus      Status    `json:"order_status"`
	ShippingProvider string    `json:"shipping_provider"`
	ShippingCode     string    `json:"shipping_code"`
	ShippingStatus   string    `json:"shipping_status"`
}

// OrderDetail is a line of an order. UnitPrice is a snapshot of the product
// price at checkout time; it is never re-read from the catalog, so historical
// orders keep their totals when prices change.
type OrderDetail struct {
	TenantID  string `json:"tenant_id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type Payment struct {
	ID               string    `json:"id"`
	TenantID         string    `json:"tenant_id"`
	OrderID          string    `json:"order_id"`
	PaymentMethod    string    `json:"payment_method"`
	PaymentReference string    `json:"payment_reference"`
	Amount           int64     `json:"amount"`
	CreatedAt        time.Time `json:"created_at"`
}

type PlaceOrderParams struct {
	ShippingProvider string `json:"shipping_provider"`
}

type PayOrderParams struct {
	PaymentMethod    string `json:"payment_method"`
	PaymentReference string `json:"payment_reference"`
	Amount           int64  `json:"amount"`
}

// Detail is the order-detail read model returned by GET /order/{id}.
type Detail struct {
	Order       *Order         `json:"order"`
	OrderDetail []*OrderDetail `json:"orderDetail"`
}
