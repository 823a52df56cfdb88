package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) (*EmailSender, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewEmailSender(config.Config{
		EmailAPIBaseURL:                srv.URL,
		EmailServiceID:                 "service_test",
		EmailPublicKey:                 "public_test",
		EmailTemplateOrderConfirmation: "template_confirm",
		EmailTemplateOrderShipped:      "template_shipped",
	}, nil)
	return s, srv
}

func testOrder() OrderData {
	return OrderData{
		OrderID:      42,
		CustomerName: "Thabo",
		OrderDate:    time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		TotalAmount:  2599.99,
		PaymentMethod:  model.PaymentMethodCashOnDelivery,
		DeliveryMethod: model.DeliveryMethodDelivery,
		DeliveryAddress: &model.Address{
			Street:     "12 Long St",
			City:       "Cape Town",
			Province:   "Western Cape",
			PostalCode: "8001",
		},
		OrderItems: []model.OrderItem{
			{ProductID: 1, ProductName: "Michelin Primacy 4", Price: 1299.99, Quantity: 2},
		},
	}
}

func TestSendOrderConfirmation(t *testing.T) {
	var got emailRequest
	s, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	})

	res := s.SendOrderConfirmation(context.Background(), testOrder(), "thabo@example.com")

	assert.True(t, res.Success)
	assert.NoError(t, res.Error)
	assert.Equal(t, "service_test", got.ServiceID)
	assert.Equal(t, "template_confirm", got.TemplateID)
	assert.Equal(t, "public_test", got.UserID)
	assert.Equal(t, "thabo@example.com", got.TemplateParams["to_email"])
	assert.Equal(t, "Thabo", got.TemplateParams["customer_name"])
	assert.Equal(t, "R2599.99", got.TemplateParams["total_amount"])
	assert.Equal(t, "Cash on Delivery", got.TemplateParams["payment_method"])
	assert.Equal(t, "Home Delivery", got.TemplateParams["delivery_method"])
	assert.Equal(t, "12 Long St, Cape Town, Western Cape, 8001", got.TemplateParams["delivery_address"])
	assert.Equal(t, true, got.TemplateParams["has_delivery_address"])

	html, _ := got.TemplateParams["order_items_html"].(string)
	assert.Contains(t, html, "Michelin Primacy 4")
	assert.Contains(t, html, "QTY: 2")
	assert.Contains(t, html, "R1299.99")
}

func TestSendOrderConfirmationDefaults(t *testing.T) {
	var got emailRequest
	s, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("OK"))
	})

	order := testOrder()
	order.CustomerName = ""
	order.DeliveryAddress = nil
	order.OrderItems = nil

	res := s.SendOrderConfirmation(context.Background(), order, "thabo@example.com")

	assert.True(t, res.Success)
	assert.Equal(t, "Valued Customer", got.TemplateParams["to_name"])
	assert.Equal(t, "Address will be confirmed during processing", got.TemplateParams["delivery_address"])
	assert.Equal(t, false, got.TemplateParams["has_delivery_address"])
	assert.Equal(t, "<p>No items found</p>", got.TemplateParams["order_items_html"])
}

func TestSendOrderConfirmationFailureIsReturnedNotThrown(t *testing.T) {
	s, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "The user_id parameter is required", http.StatusUnprocessableEntity)
	})

	res := s.SendOrderConfirmation(context.Background(), testOrder(), "thabo@example.com")

	assert.False(t, res.Success)
	assert.Error(t, res.Error)
	assert.Contains(t, res.Error.Error(), "422")
}

func TestSendOrderShipped(t *testing.T) {
	var got emailRequest
	s, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("OK"))
	})

	res := s.SendOrderShipped(context.Background(), testOrder(), "thabo@example.com")

	assert.True(t, res.Success)
	assert.Equal(t, "template_shipped", got.TemplateID)

	orders, _ := got.TemplateParams["orders"].([]interface{})
	if assert.Len(t, orders, 1) {
		item, _ := orders[0].(map[string]interface{})
		assert.Equal(t, "Michelin Primacy 4", item["name"])
		assert.Equal(t, float64(2), item["units"])
		assert.Equal(t, "1299.99", item["price"])
	}

	cost, _ := got.TemplateParams["cost"].(map[string]interface{})
	assert.Equal(t, "2599.99", cost["total"])
}

func TestEstimatedDelivery(t *testing.T) {
	s, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	s.now = func() time.Time {
		return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, "Available for collection within 2-3 business days",
		s.EstimatedDelivery(model.DeliveryMethodCollection, false))
	assert.Equal(t, "Wednesday, March 19, 2025",
		s.EstimatedDelivery(model.DeliveryMethodDelivery, false))
	assert.Equal(t, "Sunday, March 16, 2025",
		s.EstimatedDelivery(model.DeliveryMethodDelivery, true))
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "", FormatAddress(nil))
	assert.Equal(t, "", FormatAddress(&model.Address{}))
	assert.Equal(t, "12 Long St, Cape Town",
		FormatAddress(&model.Address{Street: "12 Long St", City: "Cape Town"}))
}

func TestFormatMethods(t *testing.T) {
	assert.Equal(t, "Cash on Collection", FormatPaymentMethod(model.PaymentMethodCashOnCollection))
	assert.Equal(t, "EFT", FormatPaymentMethod(model.PaymentMethod("EFT")))
	assert.Equal(t, "Store Collection", FormatDeliveryMethod(model.DeliveryMethodCollection))
}

func TestItemsHTMLPlaceholders(t *testing.T) {
	html := ItemsHTML([]model.OrderItem{{}})
	assert.Contains(t, html, "Unknown Product")
	assert.Contains(t, html, "QTY: 1")
	assert.True(t, strings.Contains(html, "placeholder"))
}
