package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context, tenantID string, limit, offset int) ([]*Product, int, error)
	GetByID(ctx context.Context, tenantID, productID string) (*Product, error)
	GetManyByIDs(ctx context.Context, tenantID string, productIDs []string) ([]*Product, error)
	GetByCategory(ctx context.Context, tenantID, categoryID string) ([]*Product, error)
	Insert(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, tenantID, productID string, params EditProductParams) (*Product, error)
	Delete(ctx context.Context, tenantID, productID string) (*Product, error)

	GetAllCategories(ctx context.Context, tenantID string) ([]*Category, error)
	GetCategoryByID(ctx context.Context, tenantID, categoryID string) (*Category, error)
	InsertCategory(ctx context.Context, c *Category) (*Category, error)
	UpdateCategory(ctx context.Context, tenantID, categoryID, name string) (*Category, error)
	DeleteCategory(ctx context.Context, tenantID, categoryID string) (*Category, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, tenant_id, name, description, price, quantity_available, category_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Price,
		&p.QuantityAvailable, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetAll(ctx context.Context, tenantID string, limit, offset int) ([]*Product, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE tenant_id = $1`, tenantID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, productID string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, productID)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetManyByIDs(ctx context.Context, tenantID string, productIDs []string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1 AND id = ANY($2)
	`, tenantID, pq.Array(productIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) GetByCategory(ctx context.Context, tenantID, categoryID string) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE tenant_id = $1 AND category_id = $2
		ORDER BY created_at DESC
	`, tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Insert(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO products (
			id, tenant_id, name, description, price, quantity_available, category_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.TenantID, p.Name, p.Description, p.Price,
		p.QuantityAvailable, p.CategoryID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, tenantID, productID string, params EditProductParams) (*Product, error) {
	const query = `
		UPDATE products
		SET name = COALESCE($3, name),
		    description = COALESCE($4, description),
		    price = COALESCE($5, price),
		    quantity_available = COALESCE($6, quantity_available),
		    category_id = COALESCE($7, category_id),
		    updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query,
		tenantID, productID,
		params.Name, params.Description, params.Price,
		params.QuantityAvailable, params.CategoryID,
	)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, tenantID, productID string) (*Product, error) {
	const query = `
		DELETE FROM products
		WHERE tenant_id = $1 AND id = $2
		RETURNING ` + productColumns

	row := r.db.QueryRowContext(ctx, query, tenantID, productID)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) GetAllCategories(ctx context.Context, tenantID string) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name
		FROM categories
		WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *repository) GetCategoryByID(ctx context.Context, tenantID, categoryID string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		SELECT id, tenant_id, name
		FROM categories
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, categoryID).Scan(&c.ID, &c.TenantID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) InsertCategory(ctx context.Context, c *Category) (*Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, tenant_id, name)
		VALUES ($1, $2, $3)
	`, c.ID, c.TenantID, c.Name)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, tenantID, categoryID, name string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $3
		WHERE tenant_id = $1 AND id = $2
		RETURNING id, tenant_id, name
	`, tenantID, categoryID, name).Scan(&c.ID, &c.TenantID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) DeleteCategory(ctx context.Context, tenantID, categoryID string) (*Category, error) {
	var c Category
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM categories
		WHERE tenant_id = $1 AND id = $2
		RETURNING id, tenant_id, name
	`, tenantID, categoryID).Scan(&c.ID, &c.TenantID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
