package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/model"
)

type createPaymentRequest struct {
	OrderID int64 `json:"orderId"`
	UserID  int64 `json:"userId"`
}

func (c *Client) CreateCashOnDeliveryPayment(ctx context.Context, orderID int64, userID int64) (model.Payment, error) {
	var out model.Payment
	err := c.post(ctx, "/api/payments/cash-on-delivery", createPaymentRequest{OrderID: orderID, UserID: userID}, &out)
	return out, err
}

func (c *Client) CreateCashOnCollectionPayment(ctx context.Context, orderID int64, userID int64) (model.Payment, error) {
	var out model.Payment
	err := c.post(ctx, "/api/payments/cash-on-collection", createPaymentRequest{OrderID: orderID, UserID: userID}, &out)
	return out, err
}

func (c *Client) PaymentByOrder(ctx context.Context, orderID int64) (model.Payment, error) {
	var out model.Payment
	err := c.get(ctx, fmt.Sprintf("/api/payments/order/%d", orderID), &out)
	return out, err
}

func (c *Client) UserPayments(ctx context.Context, userID int64) ([]model.Payment, error) {
	var out []model.Payment
	err := c.get(ctx, fmt.Sprintf("/api/payments/user/%d", userID), &out)
	return out, err
}

// 管理者用
func (c *Client) UpdatePaymentStatus(ctx context.Context, paymentID int64, status model.PaymentStatus) (model.Payment, error) {
	var out model.Payment
	err := c.put(ctx, fmt.Sprintf("/api/payments/%d/status", paymentID), map[string]model.PaymentStatus{"status": status}, &out)
	return out, err
}

func (c *Client) PaymentMethods(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/payments/methods", &out)
	return out, err
}

func (c *Client) PaymentStatuses(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/payments/statuses", &out)
	return out, err
}

// UpdateOrderPaymentStatus は注文IDで支払ステータスを更新する複合呼び出し。
// 支払レコードを注文IDで引いてから、そのpaymentIdでPUTする。
// 2リクエストはアトミックではない。1段目が失敗したら書き込みには進まず、
// そのままエラーを返す（ロールバックもリトライも無し）。
func (c *Client) UpdateOrderPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) (model.Payment, error) {
	payment, err := c.PaymentByOrder(ctx, orderID)
	if err != nil {
		c.log.Errorf("updateOrderPaymentStatus: lookup failed for order %d: %v", orderID, err)
		return model.Payment{}, err
	}

	return c.UpdatePaymentStatus(ctx, payment.PaymentID, status)
}
