package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token(ctx context.Context) string {
	return s.token
}

// 受けたリクエストを記録するテスト用バックエンド。
type recordingBackend struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  http.HandlerFunc
}

func (b *recordingBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Clone(context.Background()))
	b.mu.Unlock()
	b.handler(w, r)
}

func (b *recordingBackend) seen() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request(nil), b.requests...)
}

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) (*Client, *recordingBackend) {
	t.Helper()
	backend := &recordingBackend{handler: handler}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/tymelesstyre", &staticTokens{token: token}, nil), backend
}

func respondJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestBearerTokenAttached(t *testing.T) {
	client, backend := newTestClient(t, "token-abc", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, []model.Order{})
	})

	_, err := client.MyOrders(context.Background())
	assert.NoError(t, err)

	reqs := backend.seen()
	if assert.Len(t, reqs, 1) {
		assert.Equal(t, "Bearer token-abc", reqs[0].Header.Get("Authorization"))
		assert.Equal(t, "/tymelesstyre/api/orders/my-orders", reqs[0].URL.Path)
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	client, backend := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, []model.Product{})
	})

	_, err := client.AllProducts(context.Background())
	assert.NoError(t, err)

	reqs := backend.seen()
	if assert.Len(t, reqs, 1) {
		assert.Empty(t, reqs[0].Header.Get("Authorization"))
	}
}

func TestAPIErrorSurfacedUnmodified(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"order not found"}`, http.StatusNotFound)
	})

	_, err := client.OrderByID(context.Background(), 99)

	var apiErr *APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
		assert.Contains(t, apiErr.Body, "order not found")
	}
}

func TestOrdersByStatusEscapesPath(t *testing.T) {
	client, backend := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, []model.Order{})
	})

	_, err := client.OrdersByStatus(context.Background(), "IN TRANSIT/odd")
	assert.NoError(t, err)

	reqs := backend.seen()
	if assert.Len(t, reqs, 1) {
		assert.Equal(t, "/tymelesstyre/api/orders/status/IN%20TRANSIT%2Fodd", reqs[0].URL.EscapedPath())
	}
}

func TestUpdateOrderStatusBody(t *testing.T) {
	var body map[string]string
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		respondJSON(t, w, model.Order{OrderID: 7, OrderStatus: model.OrderStatusShipped})
	})

	order, err := client.UpdateOrderStatus(context.Background(), 7, model.OrderStatusShipped)

	assert.NoError(t, err)
	assert.Equal(t, "SHIPPED", body["status"])
	assert.Equal(t, model.OrderStatusShipped, order.OrderStatus)
}

func TestUpdateOrderPaymentStatusTwoStep(t *testing.T) {
	client, backend := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			respondJSON(t, w, model.Payment{PaymentID: 55, OrderID: 7})
		case r.Method == http.MethodPut:
			respondJSON(t, w, model.Payment{PaymentID: 55, OrderID: 7, PaymentStatus: model.PaymentStatusCompleted})
		}
	})

	payment, err := client.UpdateOrderPaymentStatus(context.Background(), 7, model.PaymentStatusCompleted)

	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusCompleted, payment.PaymentStatus)

	reqs := backend.seen()
	if assert.Len(t, reqs, 2) {
		assert.Equal(t, "/tymelesstyre/api/payments/order/7", reqs[0].URL.Path)
		// 2段目は注文IDではなくpaymentIdでPUTする
		assert.Equal(t, "/tymelesstyre/api/payments/55/status", reqs[1].URL.Path)
	}
}

func TestUpdateOrderPaymentStatusRejectsBeforeWrite(t *testing.T) {
	client, backend := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no payment", http.StatusNotFound)
	})

	_, err := client.UpdateOrderPaymentStatus(context.Background(), 7, model.PaymentStatusCompleted)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)

	// 1段目で止まり、書き込みリクエストは出ていない
	reqs := backend.seen()
	if assert.Len(t, reqs, 1) {
		assert.Equal(t, http.MethodGet, reqs[0].Method)
	}
}

func TestUpdateOrderDeliveryStatusRejectsBeforeWrite(t *testing.T) {
	client, backend := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no delivery", http.StatusNotFound)
	})

	_, err := client.UpdateOrderDeliveryStatus(context.Background(), 7, model.DeliveryStatusDelivered)

	assert.Error(t, err)
	assert.Len(t, backend.seen(), 1)
}

func TestHealthCheck(t *testing.T) {
	healthy, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(t, w, []model.Product{})
	})
	assert.True(t, healthy.HealthCheck(context.Background()))

	down, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	assert.False(t, down.HealthCheck(context.Background()))
}
