package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/model"
)

func (c *Client) CreateDelivery(ctx context.Context, delivery interface{}) (model.Delivery, error) {
	var out model.Delivery
	err := c.post(ctx, "/api/deliveries", delivery, &out)
	return out, err
}

func (c *Client) DeliveryByOrder(ctx context.Context, orderID int64) (model.Delivery, error) {
	var out model.Delivery
	err := c.get(ctx, fmt.Sprintf("/api/deliveries/order/%d", orderID), &out)
	return out, err
}

// 管理者用
func (c *Client) UpdateDeliveryStatus(ctx context.Context, deliveryID int64, status model.DeliveryStatus) (model.Delivery, error) {
	var out model.Delivery
	err := c.put(ctx, fmt.Sprintf("/api/deliveries/%d/status", deliveryID), map[string]model.DeliveryStatus{"status": status}, &out)
	return out, err
}

// 管理者用
func (c *Client) UpdateDeliveryCourier(ctx context.Context, deliveryID int64, courierName string) (model.Delivery, error) {
	var out model.Delivery
	err := c.put(ctx, fmt.Sprintf("/api/deliveries/%d/courier", deliveryID), map[string]string{"courierName": courierName}, &out)
	return out, err
}

func (c *Client) IsReadyForCollection(ctx context.Context, deliveryID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/deliveries/%d/ready-for-collection", deliveryID), &out)
	return out, err
}

func (c *Client) IsDeliveryCompleted(ctx context.Context, deliveryID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/deliveries/%d/completed", deliveryID), &out)
	return out, err
}

func (c *Client) DeliveryMethods(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/deliveries/methods", &out)
	return out, err
}

func (c *Client) DeliveryStatuses(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/deliveries/statuses", &out)
	return out, err
}

// UpdateOrderDeliveryStatus は注文IDで配送ステータスを更新する複合呼び出し。
// UpdateOrderPaymentStatus と同じく2段階で、アトミックではない。
func (c *Client) UpdateOrderDeliveryStatus(ctx context.Context, orderID int64, status model.DeliveryStatus) (model.Delivery, error) {
	delivery, err := c.DeliveryByOrder(ctx, orderID)
	if err != nil {
		c.log.Errorf("updateOrderDeliveryStatus: lookup failed for order %d: %v", orderID, err)
		return model.Delivery{}, err
	}

	return c.UpdateDeliveryStatus(ctx, delivery.DeliveryID, status)
}
