package tenant

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, tenantID string) (*Tenant, error)
	Insert(ctx context.Context, t *Tenant) (*Tenant, error)
	Update(ctx context.Context, tenantID string, params EditTenantParams) (*Tenant, error)
	Delete(ctx context.Context, tenantID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, tenantID string) (*Tenant, error) {
	const query = `
		SELECT id, owner_id, name, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var t Tenant
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Insert(ctx context.Context, t *Tenant) (*Tenant, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO tenants (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, t.ID, t.OwnerID, t.Name).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) Update(ctx context.Context, tenantID string, params EditTenantParams) (*Tenant, error) {
	const query = `
		UPDATE tenants
		SET owner_id = COALESCE($2, owner_id),
		    name = COALESCE($3, name),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_id, name, created_at, updated_at
	`

	var t Tenant
	err := r.db.QueryRowContext(ctx, query, tenantID, params.OwnerID, params.Name).Scan(
		&t.ID, &t.OwnerID, &t.Name, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Delete(ctx context.Context, tenantID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id = $1`, tenantID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrTenantNotFound
	}
	return nil
}
