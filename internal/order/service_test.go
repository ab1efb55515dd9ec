package order

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"tokomart-be/internal/cart"
	"tokomart-be/internal/productclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, tenantID, userID, shippingProvider string, unitPrices map[string]int64) (*Order, []*OrderDetail, error) {
	args := m.Called(ctx, tenantID, userID, shippingProvider, unitPrices)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*Order), args.Get(1).([]*OrderDetail), args.Error(2)
}

func (m *MockRepository) PayOrderTx(ctx context.Context, tenantID, orderID, method, reference string, amount int64) (*Payment, string, error) {
	args := m.Called(ctx, tenantID, orderID, method, reference, amount)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*Payment), args.String(1), args.Error(2)
}

func (m *MockRepository) Cancel(ctx context.Context, tenantID, userID, orderID string) error {
	args := m.Called(ctx, tenantID, userID, orderID)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, tenantID, userID, orderID string) (*Order, error) {
	args := m.Called(ctx, tenantID, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context, tenantID, userID string, limit, offset int) ([]*Order, int, error) {
	args := m.Called(ctx, tenantID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetDetails(ctx context.Context, tenantID, orderID string) ([]*OrderDetail, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*OrderDetail), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetAll(ctx context.Context, userID string, page, limit int) ([]*cart.CartItem, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*cart.CartItem), args.Int(1), args.Error(2)
}

func (m *MockCartService) AddItem(ctx context.Context, userID string, params cart.AddItemParams) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) EditItem(ctx context.Context, userID string, params cart.EditItemParams) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) DeleteItem(ctx context.Context, userID, cartID string) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) GetMany(ctx context.Context, productIDs []string) ([]productclient.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]productclient.Product), args.Error(1)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStore) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// missStore behaves like a cold, healthy cache.
func missStore() *MockStore {
	store := new(MockStore)
	store.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Maybe()
	store.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	store.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()
	store.On("InvalidatePattern", mock.Anything, mock.Anything).Return(nil).Maybe()
	return store
}

// --- Tests ---

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	cartItems := []*cart.CartItem{
		{ID: "cart-1", ProductID: "prod-1", Quantity: 2},
		{ID: "cart-2", ProductID: "prod-2", Quantity: 1},
	}
	products := []productclient.Product{
		{ID: "prod-1", Name: "Kopi", Price: 100},
		{ID: "prod-2", Name: "Teh", Price: 50},
	}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return(cartItems, 2, nil)
		lookup.On("GetMany", mock.Anything, []string{"prod-1", "prod-2"}).Return(products, nil)
		repo.On("CreateOrderTx", mock.Anything, testTenant, testUser, "JNE",
			map[string]int64{"prod-1": 100, "prod-2": 50}).
			Return(&Order{ID: "order-1", TotalAmount: 250, OrderStatus: StatusPending}, []*OrderDetail{}, nil)

		o, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.NoError(t, err)
		assert.Equal(t, int64(250), o.TotalAmount)
		repo.AssertExpectations(t)
	})

	t.Run("UnknownShippingProvider", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		svc := NewService(repo, carts, new(MockLookup), missStore(), testTenant)

		_, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "PIGEON"})
		assert.ErrorIs(t, err, ErrShippingProviderNotFound)
		carts.AssertNotCalled(t, "GetAll")
	})

	t.Run("EmptyCart", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		svc := NewService(repo, carts, new(MockLookup), missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return([]*cart.CartItem{}, 0, nil)

		_, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.ErrorIs(t, err, ErrCartEmpty)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("ProductLookupFailure", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return(cartItems, 2, nil)
		lookup.On("GetMany", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.ErrorIs(t, err, ErrProductLookup)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("LargeCartPagesThrough", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		firstPage := make([]*cart.CartItem, maxCartLines)
		allIDs := make([]string, 0, maxCartLines+1)
		allProducts := make([]productclient.Product, 0, maxCartLines+1)
		prices := make(map[string]int64, maxCartLines+1)
		for i := range firstPage {
			id := fmt.Sprintf("prod-%d", i)
			firstPage[i] = &cart.CartItem{ID: fmt.Sprintf("cart-%d", i), ProductID: id, Quantity: 1}
			allIDs = append(allIDs, id)
			allProducts = append(allProducts, productclient.Product{ID: id, Price: 10})
			prices[id] = 10
		}
		lastItem := &cart.CartItem{ID: "cart-last", ProductID: "prod-last", Quantity: 1}
		allIDs = append(allIDs, "prod-last")
		allProducts = append(allProducts, productclient.Product{ID: "prod-last", Price: 10})
		prices["prod-last"] = 10

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).
			Return(firstPage, maxCartLines+1, nil)
		carts.On("GetAll", mock.Anything, testUser, 2, maxCartLines).
			Return([]*cart.CartItem{lastItem}, maxCartLines+1, nil)
		lookup.On("GetMany", mock.Anything, allIDs).Return(allProducts, nil)
		repo.On("CreateOrderTx", mock.Anything, testTenant, testUser, "JNE", prices).
			Return(&Order{ID: "order-1", TotalAmount: 1010, OrderStatus: StatusPending}, []*OrderDetail{}, nil)

		o, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.NoError(t, err)
		assert.Equal(t, int64(1010), o.TotalAmount)
		carts.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("RetriesTransientCreateFailure", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return(cartItems, 2, nil)
		lookup.On("GetMany", mock.Anything, mock.Anything).Return(products, nil)
		repo.On("CreateOrderTx", mock.Anything, testTenant, testUser, "JNE", mock.Anything).
			Return(nil, nil, errors.New("deadlock detected")).Once()
		repo.On("CreateOrderTx", mock.Anything, testTenant, testUser, "JNE", mock.Anything).
			Return(&Order{ID: "order-1", TotalAmount: 250, OrderStatus: StatusPending}, []*OrderDetail{}, nil).Once()

		o, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.NoError(t, err)
		assert.Equal(t, "order-1", o.ID)
		repo.AssertNumberOfCalls(t, "CreateOrderTx", 2)
	})

	t.Run("CartConsumedConcurrentlyNotRetried", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return(cartItems, 2, nil)
		lookup.On("GetMany", mock.Anything, mock.Anything).Return(products, nil)
		repo.On("CreateOrderTx", mock.Anything, testTenant, testUser, "JNE", mock.Anything).
			Return(nil, nil, ErrCartEmpty)

		_, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.ErrorIs(t, err, ErrCartEmpty)
		repo.AssertNumberOfCalls(t, "CreateOrderTx", 1)
	})

	t.Run("ProductMissingFromResponse", func(t *testing.T) {
		repo := new(MockRepository)
		carts := new(MockCartService)
		lookup := new(MockLookup)
		svc := NewService(repo, carts, lookup, missStore(), testTenant)

		carts.On("GetAll", mock.Anything, testUser, 1, maxCartLines).Return(cartItems, 2, nil)
		lookup.On("GetMany", mock.Anything, mock.Anything).
			Return([]productclient.Product{{ID: "prod-1", Price: 100}}, nil)

		_, err := svc.PlaceOrder(ctx, testUser, PlaceOrderParams{ShippingProvider: "JNE"})
		assert.ErrorIs(t, err, ErrProductLookup)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})
}

func TestService_PayOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		store := missStore()
		svc := NewService(repo, new(MockCartService), new(MockLookup), store, testTenant)

		repo.On("PayOrderTx", mock.Anything, testTenant, "order-1", "BANK_TRANSFER", "ref-1", int64(500)).
			Return(&Payment{ID: "pay-1", Amount: 500}, testUser, nil)

		p, err := svc.PayOrder(ctx, "order-1", PayOrderParams{
			PaymentMethod:    "BANK_TRANSFER",
			PaymentReference: "ref-1",
			Amount:           500,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(500), p.Amount)
		repo.AssertExpectations(t)
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("PayOrderTx", mock.Anything, testTenant, "order-1", "BANK_TRANSFER", "ref-1", int64(499)).
			Return(nil, "", ErrAmountMismatch)

		_, err := svc.PayOrder(ctx, "order-1", PayOrderParams{
			PaymentMethod:    "BANK_TRANSFER",
			PaymentReference: "ref-1",
			Amount:           499,
		})
		assert.ErrorIs(t, err, ErrAmountMismatch)
	})
}

func TestService_CancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("GetByID", mock.Anything, testTenant, testUser, "order-1").
			Return(&Order{ID: "order-1", UserID: testUser, OrderStatus: StatusPending}, nil)
		repo.On("Cancel", mock.Anything, testTenant, testUser, "order-1").Return(nil)

		o, err := svc.CancelOrder(ctx, testUser, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.OrderStatus)
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("GetByID", mock.Anything, testTenant, testUser, "missing").Return(nil, nil)

		_, err := svc.CancelOrder(ctx, testUser, "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("NotOwner", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("GetByID", mock.Anything, testTenant, "intruder", "order-1").
			Return(&Order{ID: "order-1", UserID: testUser, OrderStatus: StatusPending}, nil)

		_, err := svc.CancelOrder(ctx, "intruder", "order-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "Cancel")
	})

	t.Run("AlreadyCancelled", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("GetByID", mock.Anything, testTenant, testUser, "order-1").
			Return(&Order{ID: "order-1", UserID: testUser, OrderStatus: StatusCancelled}, nil)

		_, err := svc.CancelOrder(ctx, testUser, "order-1")
		assert.ErrorIs(t, err, ErrOrderFinal)
		repo.AssertNotCalled(t, "Cancel")
	})
}

func TestService_GetDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("CacheMissLoadsAndStores", func(t *testing.T) {
		repo := new(MockRepository)
		store := missStore()
		svc := NewService(repo, new(MockCartService), new(MockLookup), store, testTenant)

		repo.On("GetByID", mock.Anything, testTenant, testUser, "order-1").
			Return(&Order{ID: "order-1", UserID: testUser, OrderStatus: StatusPaid}, nil)
		repo.On("GetDetails", mock.Anything, testTenant, "order-1").
			Return([]*OrderDetail{{OrderID: "order-1", ProductID: "prod-1", Quantity: 1, UnitPrice: 100}}, nil)

		d, err := svc.GetDetail(ctx, testUser, "order-1")
		assert.NoError(t, err)
		assert.Equal(t, "order-1", d.Order.ID)
		assert.Len(t, d.OrderDetail, 1)
	})

	t.Run("NotFoundNotRetried", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockCartService), new(MockLookup), missStore(), testTenant)

		repo.On("GetByID", mock.Anything, testTenant, testUser, "missing").Return(nil, nil)

		_, err := svc.GetDetail(ctx, testUser, "missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
		repo.AssertNumberOfCalls(t, "GetByID", 1)
		repo.AssertNotCalled(t, "GetDetails")
	})

	t.Run("CacheHitRechecksOwnership", func(t *testing.T) {
		repo := new(MockRepository)
		store := new(MockStore)
		svc := NewService(repo, new(MockCartService), new(MockLookup), store, testTenant)

		store.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				d := args.Get(2).(*Detail)
				d.Order = &Order{ID: "order-1", UserID: testUser, OrderStatus: StatusPaid}
			}).
			Return(true, nil)

		_, err := svc.GetDetail(ctx, "intruder", "order-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
		repo.AssertNotCalled(t, "GetByID")
	})
}
