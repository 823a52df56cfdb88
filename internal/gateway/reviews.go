package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain/model"
)

type CreateReviewRequest struct {
	OrderID   int64  `json:"orderId"`
	ProductID int64  `json:"productId"`
	Comment   string `json:"comment"`
	Rating    int    `json:"rating"`
}

// 注文×商品の組に対するレビューを作る。
// レビュー可否（注文がCOMPLETEDか等）はバックエンドが最終判定する。
func (c *Client) CreateReview(ctx context.Context, req CreateReviewRequest) (model.Review, error) {
	var out model.Review
	err := c.post(ctx, "/api/reviews/create", req, &out)
	return out, err
}

func (c *Client) CanReviewProduct(ctx context.Context, productID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/reviews/can-review/%d", productID), &out)
	return out, err
}

func (c *Client) CanReviewOrderProduct(ctx context.Context, orderID int64, productID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/reviews/can-review-order/%d/product/%d", orderID, productID), &out)
	return out, err
}

// レビュー可能な（完了済みの）注文一覧。
func (c *Client) ReviewableOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	err := c.get(ctx, "/api/reviews/reviewable-orders", &out)
	return out, err
}

func (c *Client) ReviewableProductsForOrder(ctx context.Context, orderID int64) ([]model.Product, error) {
	var out []model.Product
	err := c.get(ctx, fmt.Sprintf("/api/reviews/reviewable-products/order/%d", orderID), &out)
	return out, err
}

func (c *Client) MyReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	err := c.get(ctx, "/api/reviews/my-reviews", &out)
	return out, err
}

func (c *Client) ProductReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	var out []model.Review
	err := c.get(ctx, fmt.Sprintf("/api/reviews/product/%d", productID), &out)
	return out, err
}

func (c *Client) AverageRating(ctx context.Context, productID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/reviews/product/%d/average-rating", productID), &out)
	return out, err
}
