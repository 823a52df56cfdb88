// Package notify は注文確認・発送通知のトランザクションメールを
// EmailJSのREST APIで送る。送信失敗は呼び出し側へエラーとして
// 伝播させず、ログに残して構造化した結果で返す。
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"github.com/labstack/gommon/log"
)

const (
	defaultCustomerName = "Valued Customer"
	placeholderImageURL = "https://via.placeholder.com/64x64?text=Tyre"
	noAddressText       = "Address will be confirmed during processing"

	collectionEstimate = "Available for collection within 2-3 business days"

	// 配達見積り：注文時は5日後、発送済みなら2日後
	estimateDaysFromOrder   = 5
	estimateDaysFromShipped = 2
)

// Result は送信結果。Successがfalseのときだけ Error が入る。
type Result struct {
	Success bool
	Error   error
}

// OrderData はメール組み立てに必要な注文情報のスナップショット。
type OrderData struct {
	OrderID         int64              `json:"orderId"`
	CustomerName    string             `json:"customerName"`
	OrderDate       time.Time          `json:"orderDate"`
	TotalAmount     float64            `json:"totalAmount"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	DeliveryMethod  model.DeliveryMethod `json:"deliveryMethod"`
	DeliveryAddress *model.Address     `json:"deliveryAddress,omitempty"`
	OrderItems      []model.OrderItem  `json:"orderItems"`
	Shipped         bool               `json:"shipped"`
}

type EmailSender struct {
	apiBaseURL string
	serviceID  string
	publicKey  string

	templateOrderConfirmation string
	templateOrderShipped      string

	http *http.Client
	log  *log.Logger
	now  func() time.Time
}

// DI
func NewEmailSender(cfg config.Config, logger *log.Logger) *EmailSender {
	if logger == nil {
		logger = log.New("notify")
	}

	return &EmailSender{
		apiBaseURL:                strings.TrimRight(cfg.EmailAPIBaseURL, "/"),
		serviceID:                 cfg.EmailServiceID,
		publicKey:                 cfg.EmailPublicKey,
		templateOrderConfirmation: cfg.EmailTemplateOrderConfirmation,
		templateOrderShipped:      cfg.EmailTemplateOrderShipped,
		http:                      &http.Client{Timeout: 10 * time.Second},
		log:                       logger,
		now:                       time.Now,
	}
}

// SendOrderConfirmation は注文確認メールを送る。
func (s *EmailSender) SendOrderConfirmation(ctx context.Context, order OrderData, customerEmail string) Result {
	name := order.CustomerName
	if name == "" {
		name = defaultCustomerName
	}

	address := FormatAddress(order.DeliveryAddress)
	deliveryAddress := address
	if deliveryAddress == "" {
		deliveryAddress = noAddressText
	}

	params := map[string]interface{}{
		"to_name":  name,
		"to_email": customerEmail,

		"from_name": "Tymeless Tyre",
		"reply_to":  "support@tymelesstyre.com",

		// テンプレートによって宛先の変数名が違うので別名でも渡す
		"user_name":  name,
		"user_email": customerEmail,
		"email":      customerEmail,
		"name":       name,

		"customer_name":        name,
		"customer_email":       customerEmail,
		"order_id":             order.OrderID,
		"order_date":           order.OrderDate.Format("1/2/2006"),
		"total_amount":         fmt.Sprintf("R%.2f", order.TotalAmount),
		"payment_method":       FormatPaymentMethod(order.PaymentMethod),
		"delivery_method":      FormatDeliveryMethod(order.DeliveryMethod),
		"delivery_address":     deliveryAddress,
		"has_delivery_address": address != "",
		"estimated_delivery":   s.EstimatedDelivery(order.DeliveryMethod, order.Shipped),
		"order_items_html":     ItemsHTML(order.OrderItems),
		"order_items":          itemsForTemplate(order.OrderItems),
	}

	if err := s.send(ctx, s.templateOrderConfirmation, params); err != nil {
		s.log.Errorf("failed to send order confirmation email for order %d: %v", order.OrderID, err)
		return Result{Success: false, Error: err}
	}

	s.log.Infof("order confirmation email sent for order %d", order.OrderID)
	return Result{Success: true}
}

// SendOrderShipped は発送通知メールを送る。
func (s *EmailSender) SendOrderShipped(ctx context.Context, order OrderData, customerEmail string) Result {
	name := order.CustomerName
	if name == "" {
		name = defaultCustomerName
	}

	params := map[string]interface{}{
		"to_name":  name,
		"to_email": customerEmail,
		"email":    customerEmail,
		"order_id": order.OrderID,
		"orders":   itemsForShipping(order.OrderItems),
		"cost": map[string]string{
			"shipping": "0.00",
			"tax":      "0.00",
			"total":    fmt.Sprintf("%.2f", order.TotalAmount),
		},
	}

	if err := s.send(ctx, s.templateOrderShipped, params); err != nil {
		s.log.Errorf("failed to send order shipped email for order %d: %v", order.OrderID, err)
		return Result{Success: false, Error: err}
	}

	s.log.Infof("order shipped email sent for order %d", order.OrderID)
	return Result{Success: true}
}

// EstimatedDelivery は配達見積りのテキスト。
// 店頭受取は固定文言、配達は今日＋オフセットを長い日付形式で返す。
func (s *EmailSender) EstimatedDelivery(method model.DeliveryMethod, shipped bool) string {
	if method == model.DeliveryMethodCollection {
		return collectionEstimate
	}

	days := estimateDaysFromOrder
	if shipped {
		days = estimateDaysFromShipped
	}

	return s.now().AddDate(0, 0, days).Format("Monday, January 2, 2006")
}

type emailRequest struct {
	ServiceID      string                 `json:"service_id"`
	TemplateID     string                 `json:"template_id"`
	UserID         string                 `json:"user_id"`
	TemplateParams map[string]interface{} `json:"template_params"`
}

func (s *EmailSender) send(ctx context.Context, templateID string, params map[string]interface{}) error {
	body, err := json.Marshal(emailRequest{
		ServiceID:      s.serviceID,
		TemplateID:     templateID,
		UserID:         s.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBaseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("emailjs responded %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// FormatPaymentMethod は支払方法の表示名。未知の値はそのまま返す。
func FormatPaymentMethod(m model.PaymentMethod) string {
	switch m {
	case model.PaymentMethodCashOnDelivery:
		return "Cash on Delivery"
	case model.PaymentMethodCashOnCollection:
		return "Cash on Collection"
	case model.PaymentMethodCreditCard:
		return "Credit Card"
	case model.PaymentMethodDebitCard:
		return "Debit Card"
	default:
		return string(m)
	}
}

// FormatDeliveryMethod は配送方法の表示名。
func FormatDeliveryMethod(m model.DeliveryMethod) string {
	switch m {
	case model.DeliveryMethodDelivery:
		return "Home Delivery"
	case model.DeliveryMethodCollection:
		return "Store Collection"
	default:
		return string(m)
	}
}

// FormatAddress は住所を1行のテキストにする。空フィールドは飛ばす。
// 住所が無い・全フィールド空のときは空文字。
func FormatAddress(a *model.Address) string {
	if a == nil {
		return ""
	}

	parts := make([]string, 0, 6)
	for _, p := range []string{a.Street, a.Suburb, a.City, a.Province, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// ItemsHTML は明細をメール本文埋め込み用のHTMLにする。
func ItemsHTML(items []model.OrderItem) string {
	if len(items) == 0 {
		return "<p>No items found</p>"
	}

	var b strings.Builder
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = "Unknown Product"
		}
		qty := it.Quantity
		if qty == 0 {
			qty = 1
		}
		image := it.ImageURL
		if image == "" {
			image = placeholderImageURL
		}

		fmt.Fprintf(&b, `
        <table style="width: 100%%; border-collapse: collapse">
          <tr style="vertical-align: top">
            <td style="padding: 16px 8px 0 4px; display: inline-block; width: max-content">
              <img style="height: 64px" height="64px" src="%s" alt="%s" />
            </td>
            <td style="padding: 16px 8px 0 8px; width: 100%%">
              <div>%s</div>
              <div style="font-size: 14px; color: #888; padding-top: 4px">QTY: %d</div>
            </td>
            <td style="padding: 16px 4px 0 0; white-space: nowrap">
              <strong>R%.2f</strong>
            </td>
          </tr>
        </table>
      `, image, name, name, qty, float64(it.Price))
	}
	return b.String()
}

func itemsForTemplate(items []model.OrderItem) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, templateItem(it, "quantity"))
	}
	return out
}

// 発送テンプレートだけ数量の変数名が units
func itemsForShipping(items []model.OrderItem) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, templateItem(it, "units"))
	}
	return out
}

func templateItem(it model.OrderItem, qtyKey string) map[string]interface{} {
	name := it.ProductName
	if name == "" {
		name = "Unknown Product"
	}
	qty := it.Quantity
	if qty == 0 {
		qty = 1
	}
	image := it.ImageURL
	if image == "" {
		image = placeholderImageURL
	}

	return map[string]interface{}{
		"name":      name,
		qtyKey:      qty,
		"price":     fmt.Sprintf("%.2f", float64(it.Price)),
		"image_url": image,
	}
}
