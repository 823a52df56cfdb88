package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/domain/model"
)

func (c *Client) CreateOrder(ctx context.Context, order interface{}) (model.Order, error) {
	var out model.Order
	err := c.post(ctx, "/api/orders", order, &out)
	return out, err
}

// チェックアウト後に注文＋支払＋配送をまとめて作る方を推奨。
func (c *Client) CreateCompleteOrder(ctx context.Context, order interface{}) (model.Order, error) {
	var out model.Order
	err := c.post(ctx, "/api/orders/complete", order, &out)
	return out, err
}

func (c *Client) MyOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := c.get(ctx, "/api/orders/my-orders", &out)
	return out, err
}

func (c *Client) OrderByID(ctx context.Context, orderID int64) (model.Order, error) {
	var out model.Order
	err := c.get(ctx, fmt.Sprintf("/api/orders/%d", orderID), &out)
	return out, err
}

// 注文＋支払＋配送をまとめて引く。バックエンド側で時間がかかるため
// このメソッドだけ30秒タイムアウトのクライアントを使う。
func (c *Client) CompleteOrderDetails(ctx context.Context, orderID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, c.httpLong, http.MethodGet, fmt.Sprintf("/api/orders/%d/complete", orderID), nil, &out)
	return out, err
}

func (c *Client) UpdateOrder(ctx context.Context, orderID int64, order interface{}) (model.Order, error) {
	var out model.Order
	err := c.put(ctx, fmt.Sprintf("/api/orders/%d", orderID), order, &out)
	return out, err
}

// 管理者用
func (c *Client) AllOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := c.get(ctx, "/api/orders/all", &out)
	return out, err
}

func (c *Client) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	err := c.get(ctx, fmt.Sprintf("/api/orders/user/%d", userID), &out)
	return out, err
}

func (c *Client) OrdersByStatus(ctx context.Context, status string) ([]model.Order, error) {
	var out []model.Order
	err := c.get(ctx, "/api/orders/status/"+url.PathEscape(status), &out)
	return out, err
}

func (c *Client) DeleteOrder(ctx context.Context, orderID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/orders/%d", orderID), nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.Order, error) {
	var out model.Order
	err := c.put(ctx, fmt.Sprintf("/api/orders/%d/status", orderID), map[string]model.OrderStatus{"status": status}, &out)
	return out, err
}

func (c *Client) CheckDeliveryReadiness(ctx context.Context, userID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/orders/user/%d/delivery-ready", userID), &out)
	return out, err
}
