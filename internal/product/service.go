package product

import (
	"context"

	"tokomart-be/internal/cache"
	"tokomart-be/internal/logger"
	"tokomart-be/internal/retry"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context, page, limit int) ([]*Product, int, error)
	GetByID(ctx context.Context, productID string) (*Product, error)
	GetManyByIDs(ctx context.Context, productIDs []string) ([]*Product, error)
	GetByCategory(ctx context.Context, categoryID string) ([]*Product, error)
	Create(ctx context.Context, params CreateProductParams) (*Product, error)
	Edit(ctx context.Context, productID string, params EditProductParams) (*Product, error)
	Delete(ctx context.Context, productID string) (*Product, error)

	GetAllCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, name string) (*Category, error)
	EditCategory(ctx context.Context, categoryID, name string) (*Category, error)
	DeleteCategory(ctx context.Context, categoryID string) (*Category, error)
}

type service struct {
	repo     Repository
	cache    cache.Store
	tenantID string
}

func NewService(repo Repository, store cache.Store, tenantID string) Service {
	return &service{repo: repo, cache: store, tenantID: tenantID}
}

type productPage struct {
	Products []*Product `json:"products"`
	Total    int        `json:"total"`
}

func (s *service) GetAll(ctx context.Context, page, limit int) ([]*Product, int, error) {
	key := cache.ProductListKey(s.tenantID, page, limit)

	var cached productPage
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return cached.Products, cached.Total, nil
	}

	offset := (page - 1) * limit
	products, total, err := s.repo.GetAll(ctx, s.tenantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	_ = s.cache.SetJSON(ctx, key, productPage{Products: products, Total: total}, cache.TTLProduct)
	return products, total, nil
}

func (s *service) GetByID(ctx context.Context, productID string) (*Product, error) {
	key := cache.ProductDetailKey(productID)

	var cached Product
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit && cached.TenantID == s.tenantID {
		return &cached, nil
	}

	p, err := s.repo.GetByID(ctx, s.tenantID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	_ = s.cache.SetJSON(ctx, key, p, cache.TTLProduct)
	return p, nil
}

// GetManyByIDs is the bulk lookup used by the orders service at checkout.
// Never cached: checkout must see current prices.
func (s *service) GetManyByIDs(ctx context.Context, productIDs []string) ([]*Product, error) {
	return retry.Do(ctx, "product.GetManyByIDs", func(ctx context.Context) ([]*Product, error) {
		return s.repo.GetManyByIDs(ctx, s.tenantID, productIDs)
	})
}

func (s *service) GetByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	key := cache.ProductByCategoryKey(s.tenantID, categoryID)

	var cached []*Product
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	c, err := s.repo.GetCategoryByID(ctx, s.tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}

	products, err := s.repo.GetByCategory(ctx, s.tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, products, cache.TTLProduct)
	return products, nil
}

func (s *service) Create(ctx context.Context, params CreateProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("product_name", params.Name),
	)

	p := &Product{
		TenantID:          s.tenantID,
		Name:              params.Name,
		Description:       params.Description,
		Price:             params.Price,
		QuantityAvailable: params.QuantityAvailable,
		CategoryID:        params.CategoryID,
	}

	created, err := s.repo.Insert(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.invalidateProduct(ctx, created.ID, created.CategoryID)
	log.Info("product created", zap.String("product_id", created.ID))
	return created, nil
}

func (s *service) Edit(ctx context.Context, productID string, params EditProductParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "EditProduct"),
		zap.String("product_id", productID),
	)

	p, err := s.repo.Update(ctx, s.tenantID, productID, params)
	if err != nil {
		log.Error("failed to edit product", zap.Error(err))
		return nil, err
	}

	s.invalidateProduct(ctx, p.ID, p.CategoryID)
	log.Info("product edited")
	return p, nil
}

func (s *service) Delete(ctx context.Context, productID string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", productID),
	)

	p, err := s.repo.Delete(ctx, s.tenantID, productID)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return nil, err
	}

	s.invalidateProduct(ctx, p.ID, p.CategoryID)
	log.Info("product deleted")
	return p, nil
}

func (s *service) GetAllCategories(ctx context.Context) ([]*Category, error) {
	key := cache.CategoryListKey(s.tenantID)

	var cached []*Category
	if hit, _ := s.cache.GetJSON(ctx, key, &cached); hit {
		return cached, nil
	}

	categories, err := s.repo.GetAllCategories(ctx, s.tenantID)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, key, categories, cache.TTLCategory)
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c, err := s.repo.InsertCategory(ctx, &Category{TenantID: s.tenantID, Name: name})
	if err != nil {
		return nil, err
	}
	_ = s.cache.InvalidatePattern(ctx, cache.CategoryPattern(s.tenantID))
	return c, nil
}

func (s *service) EditCategory(ctx context.Context, categoryID, name string) (*Category, error) {
	c, err := s.repo.UpdateCategory(ctx, s.tenantID, categoryID, name)
	if err != nil {
		return nil, err
	}
	_ = s.cache.InvalidatePattern(ctx, cache.CategoryPattern(s.tenantID))
	_ = s.cache.InvalidatePattern(ctx, cache.ProductCategoryPattern(s.tenantID, categoryID))
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, categoryID string) (*Category, error) {
	c, err := s.repo.DeleteCategory(ctx, s.tenantID, categoryID)
	if err != nil {
		return nil, err
	}
	_ = s.cache.InvalidatePattern(ctx, cache.CategoryPattern(s.tenantID))
	_ = s.cache.InvalidatePattern(ctx, cache.ProductCategoryPattern(s.tenantID, categoryID))
	return c, nil
}

// invalidateProduct drops every cache key that may cover the product. All
// best-effort.
func (s *service) invalidateProduct(ctx context.Context, productID string, categoryID *string) {
	_ = s.cache.InvalidatePattern(ctx, cache.ProductListPattern(s.tenantID))
	_ = s.cache.InvalidatePattern(ctx, cache.ProductDetailKey(productID))
	if categoryID != nil {
		_ = s.cache.InvalidatePattern(ctx, cache.ProductCategoryPattern(s.tenantID, *categoryID))
	}
}
