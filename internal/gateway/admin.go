package gateway

import (
	"context"
	"encoding/json"
)

// 管理者セットアップ系。

func (c *Client) CreateAdmin(ctx context.Context, admin interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/api/admin-setup/create-admin", admin, &out)
	return out, err
}

func (c *Client) Admins(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/admin-setup/admins", &out)
	return out, err
}

// 認証不要
func (c *Client) AdminSetupStatus(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/admin-setup/status", &out)
	return out, err
}

// 認証不要
func (c *Client) AdminSetupInstructions(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/api/admin-setup/instructions", &out)
	return out, err
}
