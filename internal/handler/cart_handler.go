package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/cart のHTTP。カートはセッション単位で、
// リクエストごとにストレージから読み直す。
type CartHandler struct {
	storage repo.ClientStorage
	gw      *gateway.Client
}

// DI
func NewCartHandler(storage repo.ClientStorage, gw *gateway.Client) *CartHandler {
	return &CartHandler{storage: storage, gw: gw}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type cartResponse struct {
	Items     []model.CartItem `json:"items"`
	ItemCount int64            `json:"itemCount"`
	Total     float64          `json:"total"`
	Subtotal  string           `json:"subtotal"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/cart")

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PUT("/items/:productId", h.updateItem)
	g.DELETE("/items/:productId", h.removeItem)
	g.DELETE("", h.clear)
}

func (h *CartHandler) cart(c echo.Context) *usecase.CartStore {
	return usecase.NewCartStore(c.Request().Context(), h.storage, middleware.SessionID(c))
}

func respondCart(c echo.Context, cart *usecase.CartStore) error {
	return c.JSON(http.StatusOK, cartResponse{
		Items:     cart.Items(),
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
		Subtotal:  cart.Subtotal(),
	})
}

func (h *CartHandler) getCart(c echo.Context) error {
	return respondCart(c, h.cart(c))
}

// 商品情報はバックエンドから引き直す。価格の自己申告は受けない。
func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()

	product, err := h.gw.Product(ctx, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	cart := h.cart(c)
	if err := cart.AddItem(ctx, product, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return respondCart(c, cart)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cart := h.cart(c)
	if err := cart.UpdateQuantity(c.Request().Context(), productID, req.Quantity); err != nil {
		return writeError(c, err)
	}

	return respondCart(c, cart)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	cart := h.cart(c)
	if err := cart.RemoveItem(c.Request().Context(), productID); err != nil {
		return writeError(c, err)
	}

	return respondCart(c, cart)
}

func (h *CartHandler) clear(c echo.Context) error {
	cart := h.cart(c)
	if err := cart.Clear(c.Request().Context()); err != nil {
		return writeError(c, err)
	}

	return respondCart(c, cart)
}
