package order

import (
	"context"
	"database/sql"
	"errors"

	"tokomart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx converts the user's cart into an order inside one
	// transaction: the cart rows are locked, the order and its details are
	// inserted with the given unit prices, and the cart rows are deleted.
	// Either all of it becomes visible or none of it does.
	CreateOrderTx(ctx context.Context, tenantID, userID, shippingProvider string, unitPrices map[string]int64) (*Order, []*OrderDetail, error)

	// PayOrderTx validates the amount against the order total, transitions a
	// PENDING order to PAID, and inserts the payment row, all in one
	// transaction. It returns the payment and the order owner's user id.
	PayOrderTx(ctx context.Context, tenantID, orderID, method, reference string, amount int64) (*Payment, string, error)

	// Cancel moves a non-final order to CANCELLED. Zero rows affected means
	// the order was already in a final state.
	Cancel(ctx context.Context, tenantID, userID, orderID string) error

	GetByID(ctx context.Context, tenantID, userID, orderID string) (*Order, error)
	GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*Order, int, error)
	GetDetails(ctx context.Context, tenantID, orderID string) ([]*OrderDetail, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, tenant_id, user_id, order_date, total_amount, order_status, shipping_provider, shipping_code, shipping_status`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.TenantID, &o.UserID, &o.OrderDate, &o.TotalAmount,
		&o.OrderStatus, &o.ShippingProvider, &o.ShippingCode, &o.ShippingStatus,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrderTx(
	ctx context.Context,
	tenantID, userID, shippingProvider string,
	unitPrices map[string]int64,
) (*Order, []*OrderDetail, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// Lock the cart rows so a concurrent checkout for the same user blocks
	// here and then sees an empty cart. The cart is consumed exactly once.
	rows, err := tx.QueryContext(ctx, `
		SELECT id, product_id, quantity
		FROM cart
		WHERE tenant_id = $1 AND user_id = $2
		FOR UPDATE
	`, tenantID, userID)
	if err != nil {
		log.Error("failed to lock cart rows", zap.Error(err))
		return nil, nil, err
	}

	type cartRow struct {
		id        string
		productID string
		quantity  int
	}
	var cartRows []cartRow
	for rows.Next() {
		var cr cartRow
		if err := rows.Scan(&cr.id, &cr.productID, &cr.quantity); err != nil {
			rows.Close()
			return nil, nil, err
		}
		cartRows = append(cartRows, cr)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, err
	}
	rows.Close()

	if len(cartRows) == 0 {
		return nil, nil, ErrCartEmpty
	}

	var total int64
	details := make([]*OrderDetail, 0, len(cartRows))
	for _, cr := range cartRows {
		price, ok := unitPrices[cr.productID]
		if !ok {
			// The cart changed between the price lookup and the lock.
			log.Warn("cart row has no price, aborting checkout",
				zap.String("product_id", cr.productID))
			return nil, nil, ErrProductLookup
		}
		details = append(details, &OrderDetail{
			TenantID:  tenantID,
			ProductID: cr.productID,
			Quantity:  cr.quantity,
			UnitPrice: price,
		})
		total += int64(cr.quantity) * price
	}

	o := &Order{
		ID:               uuid.NewString(),
		TenantID:         tenantID,
		UserID:           userID,
		TotalAmount:      total,
		OrderStatus:      StatusPending,
		ShippingProvider: shippingProvider,
		ShippingCode:     uuid.NewString(),
		ShippingStatus:   "PENDING",
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, tenant_id, user_id, order_date, total_amount,
			order_status, shipping_provider, shipping_code, shipping_status
		) VALUES ($1,$2,$3,NOW(),$4,$5,$6,$7,$8)
		RETURNING order_date
	`,
		o.ID, o.TenantID, o.UserID, o.TotalAmount,
		o.OrderStatus, o.ShippingProvider, o.ShippingCode, o.ShippingStatus,
	).Scan(&o.OrderDate)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, nil, err
	}

	for _, d := range details {
		d.OrderID = o.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_details (tenant_id, order_id, product_id, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5)
		`, d.TenantID, d.OrderID, d.ProductID, d.Quantity, d.UnitPrice)
		if err != nil {
			log.Error("failed to insert order detail",
				zap.String("product_id", d.ProductID), zap.Error(err))
			return nil, nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM cart
		WHERE tenant_id = $1 AND user_id = $2
	`, tenantID, userID)
	if err != nil {
		log.Error("failed to clear cart", zap.Error(err))
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return nil, nil, err
	}
	committed = true

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int64("total_amount", o.TotalAmount),
		zap.Int("line_count", len(details)),
	)
	return o, details, nil
}

func (r *repository) PayOrderTx(
	ctx context.Context,
	tenantID, orderID, method, reference string,
	amount int64,
) (*Payment, string, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "PayOrderTx"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var total int64
	var ownerID string
	err = tx.QueryRowContext(ctx, `
		SELECT total_amount, user_id
		FROM orders
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`, tenantID, orderID).Scan(&total, &ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrOrderNotFound
	}
	if err != nil {
		return nil, "", err
	}

	// A payment row must never exist for an order whose total it does not
	// match.
	if amount != total {
		log.Warn("payment amount mismatch",
			zap.Int64("amount", amount),
			zap.Int64("total_amount", total),
		)
		return nil, "", ErrAmountMismatch
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET order_status = 'PAID'
		WHERE tenant_id = $1 AND id = $2 AND order_status = 'PENDING'
	`, tenantID, orderID)
	if err != nil {
		return nil, "", err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Already PAID, CANCELLED or REFUNDED.
		return nil, "", ErrOrderNotPayable
	}

	p := &Payment{
		ID:               uuid.NewString(),
		TenantID:         tenantID,
		OrderID:          orderID,
		PaymentMethod:    method,
		PaymentReference: reference,
		Amount:           amount,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (id, tenant_id, order_id, payment_method, payment_reference, amount)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at
	`, p.ID, p.TenantID, p.OrderID, p.PaymentMethod, p.PaymentReference, p.Amount).
		Scan(&p.CreatedAt)
	if err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", err
	}
	committed = true

	log.Info("payment recorded",
		zap.String("payment_id", p.ID),
		zap.Int64("amount", p.Amount),
	)
	return p, ownerID, nil
}

func (r *repository) Cancel(ctx context.Context, tenantID, userID, orderID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET order_status = 'CANCELLED'
		WHERE tenant_id = $1 AND user_id = $2 AND id = $3
		  AND order_status NOT IN ('CANCELLED', 'REFUNDED')
	`, tenantID, userID, orderID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderFinal
	}
	return nil
}

// GetByID fetches an order scoped to the tenant. An empty userID skips the
// owner filter; the payment callback path has no buyer identity.
func (r *repository) GetByID(ctx context.Context, tenantID, userID, orderID string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND id = $2`
	args := []any{tenantID, orderID}
	if userID != "" {
		query += ` AND user_id = $3`
		args = append(args, userID)
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*Order, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY order_date DESC
		LIMIT $3 OFFSET $4
	`, tenantID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE tenant_id = $1 AND user_id = $2`,
		tenantID, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *repository) GetDetails(ctx context.Context, tenantID, orderID string) ([]*OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tenant_id, order_id, product_id, quantity, unit_price
		FROM order_details
		WHERE tenant_id = $1 AND order_id = $2
	`, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*OrderDetail
	for rows.Next() {
		var d OrderDetail
		if err := rows.Scan(&d.TenantID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}
