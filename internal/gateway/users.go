package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ユーザー管理系。レスポンスはフォーム表示に使うだけなので
// 型を起こさずそのまま通す。

func (c *Client) RegisterUser(ctx context.Context, user interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/user/register", user, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, credentials interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/user/login", credentials, &out)
	return out, err
}

// JWTトークンで現在のユーザーを引く。
func (c *Client) CurrentUserProfile(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/user/profile", &out)
	return out, err
}

func (c *Client) UserByUsername(ctx context.Context, username string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/user/readByUsername/"+url.PathEscape(username), &out)
	return out, err
}

func (c *Client) UserByID(ctx context.Context, userID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, fmt.Sprintf("/user/read/%d", userID), &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, userID int64, user interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.put(ctx, fmt.Sprintf("/user/update/%d", userID), user, &out)
	return out, err
}

func (c *Client) ChangePassword(ctx context.Context, userID int64, passwords interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.put(ctx, fmt.Sprintf("/user/change-password/%d", userID), passwords, &out)
	return out, err
}

// 管理者用
func (c *Client) AllUsers(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.get(ctx, "/user/getAll", &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, user interface{}) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.post(ctx, "/user/create", user, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.delete(ctx, fmt.Sprintf("/user/delete/%d", userID), &out)
	return out, err
}
