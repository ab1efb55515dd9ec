package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tokomart-be/internal/authz"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceOrder(ctx context.Context, userID string, params PlaceOrderParams) (*Order, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockService) PayOrder(ctx context.Context, orderID string, params PayOrderParams) (*Payment, error) {
	args := m.Called(ctx, orderID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockService) CancelOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockService) GetAll(ctx context.Context, userID string, page, limit int) ([]*Order, int, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Int(1), args.Error(2)
}

func (m *MockService) GetDetail(ctx context.Context, userID, orderID string) (*Detail, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Detail), args.Error(1)
}

func newRouter(svc Service) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()
	r.Route("/order", func(r chi.Router) {
		h.RegisterPayment(r)
		r.Group(func(r chi.Router) {
			// Stand-in for the JWT middleware.
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					ctx := authz.WithIdentity(req.Context(), authz.Identity{
						UserID:   testUser,
						TenantID: testTenant,
					})
					next.ServeHTTP(w, req.WithContext(ctx))
				})
			})
			h.Register(r)
		})
	})
	return r
}

func TestHandler_Place(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceOrder", mock.Anything, testUser, PlaceOrderParams{ShippingProvider: "JNE"}).
			Return(&Order{ID: "order-1", TotalAmount: 250}, nil)

		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shipping_provider":"JNE"}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "order-1")
	})

	t.Run("UnknownShippingProviderIsNotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceOrder", mock.Anything, testUser, mock.Anything).
			Return(nil, ErrShippingProviderNotFound)

		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shipping_provider":"PIGEON"}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Shipping provider not found")
	})

	t.Run("EmptyCartIsBadRequest", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceOrder", mock.Anything, testUser, mock.Anything).Return(nil, ErrCartEmpty)

		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shipping_provider":"JNE"}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Cart is empty")
	})

	t.Run("ProductLookupFailureIsServerError", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PlaceOrder", mock.Anything, testUser, mock.Anything).Return(nil, ErrProductLookup)

		req := httptest.NewRequest(http.MethodPost, "/order", strings.NewReader(`{"shipping_provider":"JNE"}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to get products")
	})
}

func TestHandler_Pay(t *testing.T) {
	t.Run("SuccessWithoutToken", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PayOrder", mock.Anything, "order-1", mock.Anything).
			Return(&Payment{ID: "pay-1", Amount: 500}, nil)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/pay",
			strings.NewReader(`{"payment_method":"BANK_TRANSFER","payment_reference":"ref-1","amount":500}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("AmountMismatchIsBadRequest", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PayOrder", mock.Anything, "order-1", mock.Anything).Return(nil, ErrAmountMismatch)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/pay",
			strings.NewReader(`{"payment_method":"BANK_TRANSFER","amount":499}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("SecondPaymentIsConflict", func(t *testing.T) {
		svc := new(MockService)
		svc.On("PayOrder", mock.Anything, "order-1", mock.Anything).Return(nil, ErrOrderNotPayable)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/pay",
			strings.NewReader(`{"payment_method":"BANK_TRANSFER","amount":500}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MissingFieldsRejectedBeforeService", func(t *testing.T) {
		svc := new(MockService)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/pay", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "PayOrder")
	})
}

func TestHandler_Cancel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CancelOrder", mock.Anything, testUser, "order-1").
			Return(&Order{ID: "order-1", OrderStatus: StatusCancelled}, nil)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/cancel", nil)
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "CANCELLED")
	})

	t.Run("RepeatCancelIsConflict", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CancelOrder", mock.Anything, testUser, "order-1").Return(nil, ErrOrderFinal)

		req := httptest.NewRequest(http.MethodPost, "/order/order-1/cancel", nil)
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("UnknownOrderIsNotFound", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CancelOrder", mock.Anything, testUser, "missing").Return(nil, ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodPost, "/order/missing/cancel", nil)
		rec := httptest.NewRecorder()
		newRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
