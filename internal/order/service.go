package order

import (
	"context"
	"errors"

	"tokomart-be/internal/authz"
	"tokomart-be/internal/cache"
	"tokomart-be/internal/cart"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/productclient"
	"tokomart-be/internal/retry"

	"go.uber.org/zap"
)

// maxCartLines is the page size used when reading the cart at checkout. The
// whole cart is consumed, one page at a time.
const maxCartLines = 100

type Service interface {
	PlaceOrder(ctx context.Context, userID string, params PlaceOrderParams) (*Order, error)
	PayOrder(ctx context.Context, orderID string, params PayOrderParams) (*Payment, error)
	CancelOrder(ctx context.Context, userID, orderID string) (*Order, error)
	GetAll(ctx context.Context, userID string, page, limit int) ([]*Order, int, error)
	GetDetail(ctx context.Context, userID, orderID string) (*Detail, error)
}

type service struct {
	repo     Repository
	carts    cart.Service
	products productclient.Lookup
	store    cache.Store
	tenantID string
}

func NewService(repo Repository, carts cart.Service, products productclient.Lookup, store cache.Store, tenantID string) Service {
	return &service{
		repo:     repo,
		carts:    carts,
		products: products,
		store:    store,
		tenantID: tenantID,
	}
}

// orderPage is the cached shape of a list response.
type orderPage struct {
	Orders []*Order `json:"orders"`
	Total  int      `json:"total"`
}

// placementResult separates final checkout outcomes from transient failures
// so the retry loop never re-runs a checkout that cannot succeed.
type placementResult struct {
	order *Order
	abort error
}

func (s *service) PlaceOrder(ctx context.Context, userID string, params PlaceOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "PlaceOrder"),
	)

	if !ShippingProviders[params.ShippingProvider] {
		return nil, ErrShippingProviderNotFound
	}

	var items []*cart.CartItem
	for page := 1; ; page++ {
		batch, _, err := s.carts.GetAll(ctx, userID, page, maxCartLines)
		if err != nil {
			log.Error("failed to read cart", zap.Error(err))
			return nil, err
		}
		items = append(items, batch...)
		if len(batch) < maxCartLines {
			break
		}
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}

	products, err := s.products.GetMany(ctx, productIDs)
	if err != nil {
		log.Error("product lookup failed", zap.Error(err))
		return nil, ErrProductLookup
	}

	unitPrices := make(map[string]int64, len(products))
	for _, p := range products {
		unitPrices[p.ID] = p.Price
	}
	for _, id := range productIDs {
		if _, ok := unitPrices[id]; !ok {
			log.Error("product missing from lookup response", zap.String("product_id", id))
			return nil, ErrProductLookup
		}
	}

	// The transaction rolls back cleanly on failure, so it shares the retry
	// budget of the reads. A cart consumed or changed under us is a final
	// outcome, not a transient one, and is surfaced without another attempt.
	res, err := retry.Do(ctx, "order.CreateOrderTx", func(ctx context.Context) (placementResult, error) {
		o, _, err := s.repo.CreateOrderTx(ctx, s.tenantID, userID, params.ShippingProvider, unitPrices)
		if errors.Is(err, ErrCartEmpty) || errors.Is(err, ErrProductLookup) {
			return placementResult{abort: err}, nil
		}
		return placementResult{order: o}, err
	})
	if err != nil {
		return nil, err
	}
	if res.abort != nil {
		return nil, res.abort
	}
	o := res.order

	s.invalidateUser(ctx, userID)
	if err := s.store.InvalidatePattern(ctx, cache.CartPattern(userID)); err != nil {
		log.Warn("cart cache invalidation failed", zap.Error(err))
	}
	return o, nil
}

func (s *service) PayOrder(ctx context.Context, orderID string, params PayOrderParams) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "PayOrder"),
	)

	p, ownerID, err := s.repo.PayOrderTx(ctx, s.tenantID, orderID, params.PaymentMethod, params.PaymentReference, params.Amount)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, cache.OrderDetailKey(orderID)); err != nil {
		log.Warn("order detail cache invalidation failed", zap.Error(err))
	}
	s.invalidateUser(ctx, ownerID)
	return p, nil
}

func (s *service) CancelOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	o, err := retry.Do(ctx, "order.GetByID", func(ctx context.Context) (*Order, error) {
		return s.repo.GetByID(ctx, s.tenantID, userID, orderID)
	})
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	if err := authz.RequireOwner(o.UserID, userID); err != nil {
		return nil, ErrUnauthorized
	}
	if o.OrderStatus.Final() {
		return nil, ErrOrderFinal
	}

	if err := s.repo.Cancel(ctx, s.tenantID, userID, orderID); err != nil {
		return nil, err
	}
	o.OrderStatus = StatusCancelled

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "CancelOrder"),
	)
	if err := s.store.Delete(ctx, cache.OrderDetailKey(orderID)); err != nil {
		log.Warn("order detail cache invalidation failed", zap.Error(err))
	}
	s.invalidateUser(ctx, userID)
	return o, nil
}

func (s *service) GetAll(ctx context.Context, userID string, page, limit int) ([]*Order, int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "GetAll"),
	)

	key := cache.OrderListKey(userID, page, limit)
	var cached orderPage
	if hit, err := s.store.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached.Orders, cached.Total, nil
	}

	offset := (page - 1) * limit
	fetched, err := retry.Do(ctx, "order.GetAll", func(ctx context.Context) (orderPage, error) {
		orders, total, err := s.repo.GetAll(ctx, s.tenantID, userID, limit, offset)
		return orderPage{Orders: orders, Total: total}, err
	})
	if err != nil {
		return nil, 0, err
	}

	if err := s.store.SetJSON(ctx, key, fetched, cache.TTLOrderList); err != nil {
		log.Warn("order list cache write failed", zap.Error(err))
	}
	return fetched.Orders, fetched.Total, nil
}

func (s *service) GetDetail(ctx context.Context, userID, orderID string) (*Detail, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "orderService"),
		zap.String("method", "GetDetail"),
	)

	key := cache.OrderDetailKey(orderID)
	var cached Detail
	if hit, err := s.store.GetJSON(ctx, key, &cached); err == nil && hit && cached.Order != nil {
		// The key is not scoped by user, so ownership is re-checked on a hit.
		if err := authz.RequireOwner(cached.Order.UserID, userID); err != nil {
			return nil, ErrUnauthorized
		}
		return &cached, nil
	}

	detail, err := retry.Do(ctx, "order.GetDetail", func(ctx context.Context) (*Detail, error) {
		o, err := s.repo.GetByID(ctx, s.tenantID, userID, orderID)
		if err != nil {
			return nil, err
		}
		if o == nil {
			// A missing order is a final outcome, mapped after the retry.
			return nil, nil
		}
		lines, err := s.repo.GetDetails(ctx, s.tenantID, orderID)
		if err != nil {
			return nil, err
		}
		return &Detail{Order: o, OrderDetail: lines}, nil
	})
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.store.SetJSON(ctx, key, detail, cache.TTLOrderDetail); err != nil {
		log.Warn("order detail cache write failed", zap.Error(err))
	}
	return detail, nil
}

func (s *service) invalidateUser(ctx context.Context, userID string) {
	if err := s.store.InvalidatePattern(ctx, cache.OrderListPattern(userID)); err != nil {
		logger.FromCtx(ctx).Warn("order list cache invalidation failed",
			zap.String("layer", "orderService"), zap.Error(err))
	}
}
