package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"storefront/internal/domain/model"
)

func (c *Client) UserAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	var out []model.Address
	err := c.get(ctx, fmt.Sprintf("/api/addresses/user/%d", userID), &out)
	return out, err
}

func (c *Client) UserAddressesByType(ctx context.Context, userID int64, addressType string) ([]model.Address, error) {
	var out []model.Address
	err := c.get(ctx, fmt.Sprintf("/api/addresses/user/%d/type/%s", userID, url.PathEscape(addressType)), &out)
	return out, err
}

func (c *Client) CreateAddress(ctx context.Context, address interface{}) (model.Address, error) {
	var out model.Address
	err := c.post(ctx, "/api/addresses", address, &out)
	return out, err
}

func (c *Client) UpdateAddress(ctx context.Context, addressID int64, address interface{}) (model.Address, error) {
	var out model.Address
	err := c.put(ctx, fmt.Sprintf("/api/addresses/%d", addressID), address, &out)
	return out, err
}

func (c *Client) DeleteAddress(ctx context.Context, addressID int64, userID int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/addresses/%d/user/%d", addressID, userID), nil)
}

func (c *Client) UserHasAddresses(ctx context.Context, userID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/api/addresses/user/%d/exists", userID), &out)
	return out, err
}

func (c *Client) AddressTypes(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/addresses/types", &out)
	return out, err
}
