package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopping-cart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID, productID string, count int) (*model.Cart, error) {
	args := m.Called(ctx, userID, productID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID string) (*model.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) ApplyCoupon(ctx context.Context, userID, couponCode string) (*model.Cart, error) {
	args := m.Called(ctx, userID, couponCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveCoupon(ctx context.Context, userID string) (*model.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// newTestRouter mounts the handler under the real route shapes so URL
// parameters resolve the same way as in production.
func newTestRouter(h *CartHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/cart/{userId}", h.GetCart)
	r.Delete("/api/cart/{userId}", h.ClearCart)
	r.Post("/api/cart/{userId}/items", h.AddItem)
	r.Delete("/api/cart/{userId}/items/{productId}", h.RemoveItem)
	r.Post("/api/cart/{userId}/coupon", h.ApplyCoupon)
	r.Delete("/api/cart/{userId}/coupon", h.RemoveCoupon)
	return r
}

func TestCartHandler_GetCart(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1", Items: []model.CartLine{}, Total: 0}
	svc.On("GetCart", mock.Anything, "u1").Return(cart, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/u1", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "u1", got.UserID)
}

func TestCartHandler_GetCart_NotFound(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("GetCart", mock.Anything, "nobody").Return(nil, model.ErrCartNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/nobody", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeCartNotFound, resp.Error)
}

func TestCartHandler_AddItem(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1"}
	svc.On("AddItem", mock.Anything, "u1", "p1", 2).Return(cart, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/items", bytes.NewReader([]byte(`{"productId":"p1","count":2}`)))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_AddItem_DefaultsCountToOne(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1"}
	svc.On("AddItem", mock.Anything, "u1", "p1", 1).Return(cart, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/items", bytes.NewReader([]byte(`{"productId":"p1"}`)))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_AddItem_InvalidJSON(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/items", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddItem")
}

func TestCartHandler_AddItem_InvalidQuantity(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("AddItem", mock.Anything, "u1", "p1", -1).Return(nil, model.ErrInvalidQuantity)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/items", bytes.NewReader([]byte(`{"productId":"p1","count":-1}`)))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidQuantity, resp.Error)
}

func TestCartHandler_AddItem_RejectsExplicitZeroCount(t *testing.T) {
	// {"count":0} is not the same as an omitted count: it must reach the
	// service verbatim and fail validation instead of defaulting to 1.
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("AddItem", mock.Anything, "u1", "p1", 0).Return(nil, model.ErrInvalidQuantity)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/items", bytes.NewReader([]byte(`{"productId":"p1","count":0}`)))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInvalidQuantity, resp.Error)
	svc.AssertExpectations(t)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1"}
	svc.On("RemoveItem", mock.Anything, "u1", "p1").Return(cart, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/u1/items/p1", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_RemoveItem_ItemNotFound(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("RemoveItem", mock.Anything, "u1", "p9").Return(nil, model.ErrItemNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/u1/items/p9", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeItemNotFound, resp.Error)
}

func TestCartHandler_ApplyCoupon(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1"}
	svc.On("ApplyCoupon", mock.Anything, "u1", "SAVE5").Return(cart, nil)

	body, _ := json.Marshal(model.ApplyCouponRequest{CouponCode: "SAVE5"})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/u1/coupon", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_RemoveCoupon(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	cart := &model.Cart{ID: uuid.New(), UserID: "u1"}
	svc.On("RemoveCoupon", mock.Anything, "u1").Return(cart, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/u1/coupon", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_ClearCart(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("ClearCart", mock.Anything, "u1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/u1", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCartHandler_InternalError(t *testing.T) {
	svc := new(MockCartService)
	h := NewCartHandler(svc, zerolog.Nop())

	svc.On("GetCart", mock.Anything, "u1").Return(nil, errors.New("pool exhausted"))

	req := httptest.NewRequest(http.MethodGet, "/api/cart/u1", nil)
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeInternalError, resp.Error)
}
