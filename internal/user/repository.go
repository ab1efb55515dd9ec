package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository interface {
	GetByUsername(ctx context.Context, tenantID, username string) (*User, error)
	GetByID(ctx context.Context, tenantID, userID string) (*User, error)
	Insert(ctx context.Context, u *User) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, tenantID, username string) (*User, error) {
	const query = `
		SELECT id, tenant_id, username, email, password, full_name, address,
		       phone_number, is_admin, created_at, updated_at
		FROM users
		WHERE tenant_id = $1 AND username = $2
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, tenantID, username).Scan(
		&u.ID, &u.TenantID, &u.Username, &u.Email, &u.Password,
		&u.FullName, &u.Address, &u.PhoneNumber, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, userID string) (*User, error) {
	const query = `
		SELECT id, tenant_id, username, email, password, full_name, address,
		       phone_number, is_admin, created_at, updated_at
		FROM users
		WHERE tenant_id = $1 AND id = $2
	`

	var u User
	err := r.db.QueryRowContext(ctx, query, tenantID, userID).Scan(
		&u.ID, &u.TenantID, &u.Username, &u.Email, &u.Password,
		&u.FullName, &u.Address, &u.PhoneNumber, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Insert(ctx context.Context, u *User) (*User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	const query = `
		INSERT INTO users (
			id, tenant_id, username, email, password, full_name,
			address, phone_number, is_admin
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		u.ID, u.TenantID, u.Username, u.Email, u.Password,
		u.FullName, u.Address, u.PhoneNumber, u.IsAdmin,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return u, nil
}
