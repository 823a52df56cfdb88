package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"storefront/internal/auth"
	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// 常に認証済み扱いのガード。チェックアウト経路のテスト用。
type allowAll struct{}

func (allowAll) IsAuthenticated(ctx context.Context, sessionID string) bool { return true }
func (allowAll) IsAdmin(ctx context.Context, sessionID string) bool         { return true }

type checkoutBackend struct {
	mu           sync.Mutex
	orderBodies  []map[string]interface{}
	paymentCalls int
}

func (b *checkoutBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tymelesstyre/api/products/1":
			json.NewEncoder(w).Encode(model.Product{ProductID: 1, ProductName: "Continental EcoContact", Price: 1200})
		case "/tymelesstyre/api/orders/complete":
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			b.mu.Lock()
			b.orderBodies = append(b.orderBodies, body)
			b.mu.Unlock()
			json.NewEncoder(w).Encode(model.Order{OrderID: 31, UserID: 9, OrderStatus: model.OrderStatusPending, TotalAmount: 2400})
		case "/tymelesstyre/api/payments/cash-on-delivery":
			b.mu.Lock()
			b.paymentCalls++
			b.mu.Unlock()
			json.NewEncoder(w).Encode(model.Payment{PaymentID: 5, OrderID: 31, PaymentStatus: model.PaymentStatusPending})
		default:
			http.NotFound(w, r)
		}
	}
}

func newCheckoutEcho(t *testing.T, storage repo.ClientStorage) (*echo.Echo, *checkoutBackend) {
	t.Helper()
	backend := &checkoutBackend{}
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	gw := gateway.New(srv.URL+"/tymelesstyre", nil, nil)

	e := echo.New()
	e.Use(middleware.Session())
	NewCartHandler(storage, gw).RegisterRoutes(e)
	NewOrderHandler(gw, storage, nil, nil, nil).RegisterRoutes(e, middleware.RequireAuth(allowAll{}))
	return e, backend
}

func postJSON(e *echo.Echo, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "test-session"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutEmptyCart(t *testing.T) {
	e, _ := newCheckoutEcho(t, infraRepo.NewClientStorageMemory())

	rec := postJSON(e, "/api/checkout", `{"userId":9,"paymentMethod":"CASH_ON_DELIVERY","deliveryMethod":"DELIVERY"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	storage := infraRepo.NewClientStorageMemory()
	e, backend := newCheckoutEcho(t, storage)

	postJSON(e, "/api/cart/items", `{"productId":1,"quantity":2}`)

	rec := postJSON(e, "/api/checkout", `{"userId":9,"customerEmail":"t@example.com","paymentMethod":"CASH_ON_DELIVERY","deliveryMethod":"DELIVERY"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res checkoutResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(31), res.Order.OrderID)
	if assert.NotNil(t, res.Payment) {
		assert.Equal(t, int64(5), res.Payment.PaymentID)
	}

	// 注文ボディはカートの内容から組まれる
	if assert.Len(t, backend.orderBodies, 1) {
		body := backend.orderBodies[0]
		assert.Equal(t, float64(2400), body["totalAmount"])
		items, _ := body["orderItems"].([]interface{})
		assert.Len(t, items, 1)
	}
	assert.Equal(t, 1, backend.paymentCalls)

	// カートはキーごと消えている
	_, err := storage.Get(context.Background(), "cart:test-session")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCheckoutRequiresAuth(t *testing.T) {
	storage := infraRepo.NewClientStorageMemory()
	backend := &checkoutBackend{}
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)
	gw := gateway.New(srv.URL+"/tymelesstyre", nil, nil)

	e := echo.New()
	e.Use(middleware.Session())
	// 実物のauthサービス（トークン未保存なので未認証）
	NewOrderHandler(gw, storage, nil, nil, nil).RegisterRoutes(e, middleware.RequireAuth(auth.NewService(storage, "")))

	rec := postJSON(e, "/api/checkout", `{"userId":9}`)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
