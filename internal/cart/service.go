package cart

import (
	"context"

	"tokomart-be/internal/cache"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/retry"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context, userID string, page, limit int) ([]*CartItem, int, error)
	AddItem(ctx context.Context, userID string, params AddItemParams) (*CartItem, error)
	EditItem(ctx context.Context, userID string, params EditItemParams) (*CartItem, error)
	DeleteItem(ctx context.Context, userID, cartID string) (*CartItem, error)
}

type service struct {
	repo     Repository
	cache    cache.Store
	tenantID string
}

func NewService(repo Repository, store cache.Store, tenantID string) Service {
	return &service{repo: repo, cache: store, tenantID: tenantID}
}

type cartPage struct {
	Items []*CartItem `json:"cartItems"`
	Total int         `json:"total"`
}

func (s *service) GetAll(ctx context.Context, userID string, page, limit int) ([]*CartItem, int, error) {
	key := cache.CartListKey(userID, page, limit)

	var cached cartPage
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return cached.Items, cached.Total, nil
	}

	offset := (page - 1) * limit
	fetched, err := retry.Do(ctx, "cart.GetAll", func(ctx context.Context) (cartPage, error) {
		items, total, err := s.repo.GetAll(ctx, s.tenantID, userID, limit, offset)
		return cartPage{Items: items, Total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}

	_ = s.cache.SetJSON(ctx, key, fetched, cache.TTLCart)
	return fetched.Items, fetched.Total, nil
}

// AddItem puts a product into the user's cart, merging quantities when the
// product is already there.
func (s *service) AddItem(ctx context.Context, userID string, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("user_id", userID),
		zap.String("product_id", params.ProductID),
	)

	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.repo.GetByUserAndProduct(ctx, s.tenantID, userID, params.ProductID)
	if err != nil {
		log.Error("failed to look up cart item", zap.Error(err))
		return nil, err
	}

	var item *CartItem
	if existing == nil {
		item, err = s.repo.Insert(ctx, &CartItem{
			TenantID:  s.tenantID,
			UserID:    userID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
		})
	} else {
		item, err = s.repo.UpdateQuantity(ctx, s.tenantID, userID, existing.ID, existing.Quantity+params.Quantity)
	}
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, userID)
	log.Info("cart item added", zap.String("cart_id", item.ID), zap.Int("quantity", item.Quantity))
	return item, nil
}

// EditItem sets a cart row's quantity. Anything below 1 removes the row.
func (s *service) EditItem(ctx context.Context, userID string, params EditItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "EditItem"),
		zap.String("user_id", userID),
		zap.String("cart_id", params.CartID),
	)

	var item *CartItem
	var err error

	if params.Quantity < 1 {
		item, err = s.repo.Delete(ctx, s.tenantID, userID, params.CartID)
		if err == nil {
			item.Quantity = 0
			log.Info("cart item removed, quantity below 1")
		}
	} else {
		item, err = s.repo.UpdateQuantity(ctx, s.tenantID, userID, params.CartID, params.Quantity)
	}
	if err != nil {
		log.Warn("failed to edit cart item", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, userID)
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, userID, cartID string) (*CartItem, error) {
	item, err := s.repo.Delete(ctx, s.tenantID, userID, cartID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	return item, nil
}

func (s *service) invalidate(ctx context.Context, userID string) {
	_ = s.cache.InvalidatePattern(ctx, cache.CartPattern(userID))
}
