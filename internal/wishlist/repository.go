package wishlist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type Repository interface {
	GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*Wishlist, int, error)
	GetByID(ctx context.Context, tenantID, wishlistID string) (*Wishlist, error)
	Insert(ctx context.Context, w *Wishlist) (*Wishlist, error)
	UpdateName(ctx context.Context, tenantID, wishlistID, name string) (*Wishlist, error)
	Delete(ctx context.Context, tenantID, wishlistID string) (*Wishlist, error)

	GetDetails(ctx context.Context, wishlistID string) ([]*WishlistDetail, error)
	InsertDetail(ctx context.Context, d *WishlistDetail) (*WishlistDetail, error)
	DeleteDetail(ctx context.Context, wishlistID, productID string) (*WishlistDetail, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const wishlistColumns = `id, tenant_id, user_id, name`

func scanWishlist(row interface{ Scan(...any) error }) (*Wishlist, error) {
	var w Wishlist
	if err := row.Scan(&w.ID, &w.TenantID, &w.UserID, &w.Name); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*Wishlist, int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wishlistColumns+`
		FROM wishlists
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY name
		LIMIT $3 OFFSET $4
	`, tenantID, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var lists []*Wishlist
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			return nil, 0, err
		}
		lists = append(lists, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlists WHERE tenant_id = $1 AND user_id = $2`,
		tenantID, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return lists, total, nil
}

func (r *repository) GetByID(ctx context.Context, tenantID, wishlistID string) (*Wishlist, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+wishlistColumns+`
		FROM wishlists
		WHERE tenant_id = $1 AND id = $2
	`, tenantID, wishlistID)

	w, err := scanWishlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return w, err
}

func (r *repository) Insert(ctx context.Context, w *Wishlist) (*Wishlist, error) {
	w.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlists (id, tenant_id, user_id, name)
		VALUES ($1, $2, $3, $4)
	`, w.ID, w.TenantID, w.UserID, w.Name)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *repository) UpdateName(ctx context.Context, tenantID, wishlistID, name string) (*Wishlist, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE wishlists
		SET name = $3
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+wishlistColumns+`
	`, tenantID, wishlistID, name)

	w, err := scanWishlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWishlistNotFound
	}
	return w, err
}

func (r *repository) Delete(ctx context.Context, tenantID, wishlistID string) (*Wishlist, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM wishlists
		WHERE tenant_id = $1 AND id = $2
		RETURNING `+wishlistColumns+`
	`, tenantID, wishlistID)

	w, err := scanWishlist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWishlistNotFound
	}
	return w, err
}

func (r *repository) GetDetails(ctx context.Context, wishlistID string) ([]*WishlistDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, wishlist_id, product_id
		FROM wishlist_details
		WHERE wishlist_id = $1
	`, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []*WishlistDetail
	for rows.Next() {
		var d WishlistDetail
		if err := rows.Scan(&d.ID, &d.WishlistID, &d.ProductID); err != nil {
			return nil, err
		}
		details = append(details, &d)
	}
	return details, rows.Err()
}

func (r *repository) InsertDetail(ctx context.Context, d *WishlistDetail) (*WishlistDetail, error) {
	d.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_details (id, wishlist_id, product_id)
		VALUES ($1, $2, $3)
	`, d.ID, d.WishlistID, d.ProductID)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *repository) DeleteDetail(ctx context.Context, wishlistID, productID string) (*WishlistDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM wishlist_details
		WHERE wishlist_id = $1 AND product_id = $2
		RETURNING id, wishlist_id, product_id
	`, wishlistID, productID)

	var d WishlistDetail
	err := row.Scan(&d.ID, &d.WishlistID, &d.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
