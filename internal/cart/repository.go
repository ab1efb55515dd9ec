package cart

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*CartItem, int, error)
	GetByID(ctx context.Context, tenantID, userID, cartID string) (*CartItem, error)
	GetByUserAndProduct(ctx context.Context, tenantID, userID, productID string) (*CartItem, error)
	Insert(ctx context.Context, item *CartItem) (*CartItem, error)
	UpdateQuantity(ctx context.Context, tenantID, userID, cartID string, quantity int) (*CartItem, error)
	Delete(ctx context.Context, tenantID, userID, cartID string) (*CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cartColumns = `id, tenant_id, user_id, product_id, quantity, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*CartItem, error) {
	var item CartItem
	err := row.Scan(
		&item.ID, &item.TenantID, &item.UserID, &item.ProductID,
		&item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*CartItem, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+cartColumns+`
		FROM cart
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY created_at
		LIMIT $3 OFFSET $4
	`, tenantID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart WHERE tenant_id = $1 AND user_id = $2`,
		tenantID, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, userID, cartID string) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cartColumns+`
		FROM cart
		WHERE tenant_id = $1 AND user_id = $2 AND id = $3
	`, tenantID, userID, cartID)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) GetByUserAndProduct(ctx context.Context, tenantID, userID, productID string) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cartColumns+`
		FROM cart
		WHERE tenant_id = $1 AND user_id = $2 AND product_id = $3
	`, tenantID, userID, productID)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Insert(ctx context.Context, item *CartItem) (*CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO cart (id, tenant_id, user_id, product_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.TenantID, item.UserID, item.ProductID, item.Quantity,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, tenantID, userID, cartID string, quantity int) (*CartItem, error) {
	const query = `
		UPDATE cart
		SET quantity = $4, updated_at = NOW()
		WHERE tenant_id = $1 AND user_id = $2 AND id = $3
		RETURNING ` + cartColumns

	row := r.db.QueryRowContext(ctx, query, tenantID, userID, cartID, quantity)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, userID, cartID string) (*CartItem, error) {
	const query = `
		DELETE FROM cart
		WHERE tenant_id = $1 AND user_id = $2 AND id = $3
		RETURNING ` + cartColumns

	row := r.db.QueryRowContext(ctx, query, tenantID, userID, cartID)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
