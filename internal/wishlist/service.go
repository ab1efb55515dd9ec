package wishlist

import (
	"context"
	"strings"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/retry"
)

type Service interface {
	GetAll(ctx context.Context, userID string, page, limit int) ([]*Wishlist, int, error)
	Get(ctx context.Context, userID, wishlistID string) (*Wishlist, []*WishlistDetail, error)
	Create(ctx context.Context, userID string, params CreateParams) (*Wishlist, error)
	Edit(ctx context.Context, userID string, params EditParams) (*Wishlist, error)
	Delete(ctx context.Context, userID, wishlistID string) (*Wishlist, error)
	AddProduct(ctx context.Context, userID string, params ItemParams) (*WishlistDetail, error)
	RemoveProduct(ctx context.Context, userID string, params ItemParams) (*WishlistDetail, error)
}

type service struct {
	repo     Repository
	tenantID string
}

func NewService(repo Repository, tenantID string) Service {
	return &service{repo: repo, tenantID: tenantID}
}

// owned fetches the wishlist and verifies the requester owns it. Every
// mutation on a wishlist or its items goes through this check first.
func (s *service) owned(ctx context.Context, userID, wishlistID string) (*Wishlist, error) {
	w, err := retry.Do(ctx, "wishlist.GetByID", func(ctx context.Context) (*Wishlist, error) {
		return s.repo.GetByID(ctx, s.tenantID, wishlistID)
	})
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWishlistNotFound
	}
	if err := authz.RequireOwner(w.UserID, userID); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) GetAll(ctx context.Context, userID string, page, limit int) ([]*Wishlist, int, error) {
	offset := (page - 1) * limit
	type pageResult struct {
		lists []*Wishlist
		total int
	}
	res, err := retry.Do(ctx, "wishlist.GetAll", func(ctx context.Context) (pageResult, error) {
		lists, total, err := s.repo.GetAll(ctx, s.tenantID, userID, limit, offset)
		return pageResult{lists: lists, total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.lists, res.total, nil
}

func (s *service) Get(ctx context.Context, userID, wishlistID string) (*Wishlist, []*WishlistDetail, error) {
	w, err := s.owned(ctx, userID, wishlistID)
	if err != nil {
		return nil, nil, err
	}

	details, err := retry.Do(ctx, "wishlist.GetDetails", func(ctx context.Context) ([]*WishlistDetail, error) {
		return s.repo.GetDetails(ctx, wishlistID)
	})
	if err != nil {
		return nil, nil, err
	}
	return w, details, nil
}

func (s *service) Create(ctx context.Context, userID string, params CreateParams) (*Wishlist, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Insert(ctx, &Wishlist{
		TenantID: s.tenantID,
		UserID:   userID,
		Name:     name,
	})
}

func (s *service) Edit(ctx context.Context, userID string, params EditParams) (*Wishlist, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.owned(ctx, userID, params.ID); err != nil {
		return nil, err
	}
	return s.repo.UpdateName(ctx, s.tenantID, params.ID, name)
}

func (s *service) Delete(ctx context.Context, userID, wishlistID string) (*Wishlist, error) {
	if _, err := s.owned(ctx, userID, wishlistID); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, s.tenantID, wishlistID)
}

func (s *service) AddProduct(ctx context.Context, userID string, params ItemParams) (*WishlistDetail, error) {
	if _, err := s.owned(ctx, userID, params.WishlistID); err != nil {
		return nil, err
	}
	return s.repo.InsertDetail(ctx, &WishlistDetail{
		WishlistID: params.WishlistID,
		ProductID:  params.ProductID,
	})
}

func (s *service) RemoveProduct(ctx context.Context, userID string, params ItemParams) (*WishlistDetail, error) {
	if _, err := s.owned(ctx, userID, params.WishlistID); err != nil {
		return nil, err
	}
	return s.repo.DeleteDetail(ctx, params.WishlistID, params.ProductID)
}
