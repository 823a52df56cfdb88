// Package gateway はリモートのtymelesstyreバックエンドを呼ぶHTTPクライアント。
// バックエンドの1操作につき1メソッド。各呼び出しで
//   - 保存済みbearerトークンがあれば Authorization ヘッダに付ける
//   - リクエストとレスポンス（またはエラー）をログに残す
//   - エラーは加工もリトライもせずそのまま呼び出し側へ返す
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/middleware"

	"github.com/labstack/gommon/log"
)

const (
	defaultTimeout = 10 * time.Second

	// 注文詳細の複合取得だけバックエンド側が重いので長めに待つ
	extendedTimeout = 30 * time.Second
)

// TokenSource は呼び出しに付けるbearerトークンの供給元。
// トークンが無いときは空文字を返す。
type TokenSource interface {
	Token(ctx context.Context) string
}

// APIError はバックエンドの非2xx応答。
type APIError struct {
	Status int
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.URL)
}

type Client struct {
	baseURL  string
	http     *http.Client
	httpLong *http.Client
	tokens   TokenSource
	log      *log.Logger
}

// DI。baseURLは /tymelesstyre まで含める。
func New(baseURL string, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New("gateway")
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		httpLong: &http.Client{Timeout: extendedTimeout},
		tokens:   tokens,
		log:      logger,
	}
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, c.http, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, c.http, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.do(ctx, c.http, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, c.http, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, client *http.Client, method string, path string, body interface{}, out interface{}) error {
	var (
		reader  io.Reader
		payload string
	)
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
		payload = string(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		if tok := c.tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	c.log.Infof("API Request: %s %s %s", method, path, payload)

	resp, err := client.Do(req)
	if err != nil {
		c.log.Errorf("API Error: %s %s: %v", method, path, err)
		middleware.RecordGatewayRequest(method, "transport_error")
		return err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		c.log.Errorf("API Error: %s %s: %v", method, path, readErr)
		middleware.RecordGatewayRequest(method, "transport_error")
		return readErr
	}

	middleware.RecordGatewayRequest(method, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			Status: resp.StatusCode,
			URL:    path,
			Body:   string(respBody),
		}
		c.log.Errorf("API Error Response: status=%d url=%s data=%s", resp.StatusCode, path, truncate(respBody))
		return apiErr
	}

	c.log.Infof("API Response: %d %s %s", resp.StatusCode, path, truncate(respBody))

	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// multipart送信用（商品画像アップロード）。Content-Typeは呼び出し側が組む。
func (c *Client) postRaw(ctx context.Context, path string, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	if c.tokens != nil {
		if tok := c.tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	c.log.Infof("API Request: POST %s (multipart)", path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorf("API Error: POST %s: %v", path, err)
		middleware.RecordGatewayRequest(http.MethodPost, "transport_error")
		return err
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return readErr
	}

	middleware.RecordGatewayRequest(http.MethodPost, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Errorf("API Error Response: status=%d url=%s data=%s", resp.StatusCode, path, truncate(respBody))
		return &APIError{Status: resp.StatusCode, URL: path, Body: string(respBody)}
	}

	c.log.Infof("API Response: %d %s %s", resp.StatusCode, path, truncate(respBody))

	if out == nil || len(respBody) == 0 {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// ログが巨大化しないように応答は先頭だけ残す
func truncate(b []byte) string {
	const max = 512
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
