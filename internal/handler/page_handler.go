package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/gateway"
	"storefront/internal/middleware"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SPAのルート面を写したページエンドポイント。
// ガード付きルートはここで認証・権限を評価し、
// 各ページの初期表示に必要なデータを集約して返す。
type PageHandler struct {
	gw      *gateway.Client
	storage repo.ClientStorage
}

// DI
func NewPageHandler(gw *gateway.Client, storage repo.ClientStorage) *PageHandler {
	return &PageHandler{gw: gw, storage: storage}
}

type pageResponse struct {
	Page string      `json:"page"`
	Data interface{} `json:"data,omitempty"`
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc, requireAdmin echo.MiddlewareFunc) {
	e.GET("/", h.home)
	e.GET("/login", h.static("login"))
	e.GET("/register", h.static("register"))
	e.GET("/products", h.products)
	e.GET("/products/:id", h.product)
	e.GET("/cart", h.cartPage)

	e.GET("/checkout", h.checkout, requireAuth)
	e.GET("/order-confirmation/:orderId", h.orderConfirmation, requireAuth)
	e.GET("/reviews", h.reviews, requireAuth)

	e.GET("/profile", h.profileRedirect, requireAuth)
	p := e.Group("/profile", requireAuth)
	p.GET("/personal-details", h.personalDetails)
	p.GET("/address-book", h.addressBook)
	p.GET("/orders", h.profileOrders)
	p.GET("/reviews", h.profileReviews)

	a := e.Group("/admin", requireAdmin)
	a.GET("/products", h.adminProducts)
	a.GET("/orders", h.adminOrders)
	a.GET("/users", h.adminUsers)
	a.GET("/management", h.static("admin-management"))

	// 未定義ルートはトップへ
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/")
	})
}

func (h *PageHandler) static(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, pageResponse{Page: name})
	}
}

func (h *PageHandler) home(c echo.Context) error {
	products, err := h.gw.AllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "home", Data: products})
}

func (h *PageHandler) products(c echo.Context) error {
	products, err := h.gw.AllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "products", Data: products})
}

func (h *PageHandler) product(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	ctx := c.Request().Context()

	product, err := h.gw.Product(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	data := map[string]interface{}{"product": product}
	if reviews, revErr := h.gw.ProductReviews(ctx, id); revErr == nil {
		data["reviews"] = reviews
	}
	if rating, rateErr := h.gw.AverageRating(ctx, id); rateErr == nil {
		data["rating"] = rating
	}

	return c.JSON(http.StatusOK, pageResponse{Page: "product-detail", Data: data})
}

func (h *PageHandler) cartPage(c echo.Context) error {
	cart := usecase.NewCartStore(c.Request().Context(), h.storage, middleware.SessionID(c))
	return c.JSON(http.StatusOK, pageResponse{Page: "cart", Data: map[string]interface{}{
		"items":     cart.Items(),
		"itemCount": cart.ItemCount(),
		"subtotal":  cart.Subtotal(),
	}})
}

// チェックアウト画面の初期データ。カートと住所帳。
func (h *PageHandler) checkout(c echo.Context) error {
	ctx := c.Request().Context()
	cart := usecase.NewCartStore(ctx, h.storage, middleware.SessionID(c))

	data := map[string]interface{}{
		"items":    cart.Items(),
		"subtotal": cart.Subtotal(),
	}

	if userID, ok := h.currentUserID(c); ok {
		if addresses, addrErr := h.gw.UserAddresses(ctx, userID); addrErr == nil {
			data["addresses"] = addresses
		}
	}

	return c.JSON(http.StatusOK, pageResponse{Page: "checkout", Data: data})
}

func (h *PageHandler) orderConfirmation(c echo.Context) error {
	id, err := paramInt64(c, "orderId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	order, err := h.gw.OrderByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "order-confirmation", Data: order})
}

func (h *PageHandler) reviews(c echo.Context) error {
	orders, err := h.gw.ReviewableOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "reviews", Data: orders})
}

func (h *PageHandler) profileRedirect(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/profile/personal-details")
}

func (h *PageHandler) personalDetails(c echo.Context) error {
	profile, err := h.gw.CurrentUserProfile(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "personal-details", Data: profile})
}

func (h *PageHandler) addressBook(c echo.Context) error {
	userID, ok := h.currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	addresses, err := h.gw.UserAddresses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "address-book", Data: addresses})
}

func (h *PageHandler) profileOrders(c echo.Context) error {
	orders, err := h.gw.MyOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "orders", Data: orders})
}

func (h *PageHandler) profileReviews(c echo.Context) error {
	reviews, err := h.gw.MyReviews(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "my-reviews", Data: reviews})
}

func (h *PageHandler) adminProducts(c echo.Context) error {
	products, err := h.gw.AllProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin-products", Data: products})
}

func (h *PageHandler) adminOrders(c echo.Context) error {
	orders, err := h.gw.AllOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin-orders", Data: orders})
}

func (h *PageHandler) adminUsers(c echo.Context) error {
	users, err := h.gw.AllUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "admin-users", Data: users})
}

// プロフィールからuserIdを引く。バックエンドが持ち主なので毎回問い合わせる。
func (h *PageHandler) currentUserID(c echo.Context) (int64, bool) {
	raw, err := h.gw.CurrentUserProfile(c.Request().Context())
	if err != nil {
		return 0, false
	}

	var profile struct {
		UserID int64 `json:"userId"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil || profile.UserID == 0 {
		return 0, false
	}
	return profile.UserID, true
}
