// Package handler はストアフロントのHTTPハンドラ。
// 永続状態は持たず、gatewayとカートストアへの薄いJSON射影に徹する。
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/gateway"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError はエラーをHTTPレスポンスへ変換する。
// バックエンド由来のAPIErrorはステータスとボディをそのまま返す。
func writeError(c echo.Context, err error) error {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		if json.Valid([]byte(apiErr.Body)) && apiErr.Body != "" {
			return c.JSONBlob(apiErr.Status, []byte(apiErr.Body))
		}
		return c.JSON(apiErr.Status, ErrorResponse{Error: apiErr.Body})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	if errors.Is(err, repo.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func paramInt64(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
