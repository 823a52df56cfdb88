package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storefront/internal/domain/model"
)

func (c *Client) AllProducts(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	err := c.get(ctx, "/api/products", &out)
	return out, err
}

func (c *Client) Product(ctx context.Context, productID int64) (model.Product, error) {
	var out model.Product
	err := c.get(ctx, fmt.Sprintf("/api/products/%d", productID), &out)
	return out, err
}

// 管理者用。画像付きなのでmultipartをそのまま転送する。
func (c *Client) CreateProductWithImage(ctx context.Context, contentType string, form io.Reader) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.postRaw(ctx, "/api/products/create-with-image", contentType, form, &out)
	return out, err
}

func (c *Client) UpdateProduct(ctx context.Context, productID int64, product interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.put(ctx, fmt.Sprintf("/api/products/%d", productID), product, &out)
	return out, err
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/products/%d", productID), nil)
}

// タイヤ詳細系（商品とは別リソース）
func (c *Client) TyreByID(ctx context.Context, tyreID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/tyres/%d", tyreID), &out)
	return out, err
}

func (c *Client) CreateTyre(ctx context.Context, tyre interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/api/tyres", tyre, &out)
	return out, err
}

func (c *Client) CreateTyresBulk(ctx context.Context, tyres interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/api/tyres/bulk", tyres, &out)
	return out, err
}

// HealthCheck は疎通確認。失敗してもエラーにせずfalseを返す。
func (c *Client) HealthCheck(ctx context.Context) bool {
	err := c.do(ctx, c.http, http.MethodGet, "/tyres", nil, nil)
	return err == nil
}
