package handler

import (
	"net/http"

	"storefront/internal/gateway"
	"storefront/internal/status"

	"github.com/labstack/echo/v4"
)

// 商品カタログの読み取り系。全件一覧と詳細、レビュー表示。
type ProductHandler struct {
	gw *gateway.Client
}

// DI
func NewProductHandler(gw *gateway.Client) *ProductHandler {
	return &ProductHandler{gw: gw}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/products")

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/:id/reviews", h.reviews)
	g.GET("/:id/rating", h.rating)

	e.GET("/api/health", h.health)
	e.GET("/api/statuses", h.statuses)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.gw.AllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) get(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	product, err := h.gw.Product(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) reviews(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	reviews, err := h.gw.ProductReviews(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ProductHandler) rating(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	rating, err := h.gw.AverageRating(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, rating)
}

func (h *ProductHandler) health(c echo.Context) error {
	ok := h.gw.HealthCheck(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, map[string]bool{"backend": false})
	}
	return c.JSON(http.StatusOK, map[string]bool{"backend": true})
}

// フロントのバリデーション用に有効ステータス一覧を公開する。
func (h *ProductHandler) statuses(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"order":    status.ValidOrderStatuses(),
		"payment":  status.ValidPaymentStatuses(),
		"delivery": status.ValidDeliveryStatuses(),
		"progress": status.ProgressSteps(),
	})
}
