package handler

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	repo "storefront/internal/repository"
	"storefront/internal/status"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// 注文・チェックアウト・レビューのHTTP。
type OrderHandler struct {
	gw      *gateway.Client
	storage repo.ClientStorage
	mailer  *notify.EmailSender
	events  *notify.Dispatcher // nilならmailerで直送
	log     *log.Logger
}

// DI。eventsはキュー未設定の環境ではnil。
func NewOrderHandler(gw *gateway.Client, storage repo.ClientStorage, mailer *notify.EmailSender, events *notify.Dispatcher, logger *log.Logger) *OrderHandler {
	if logger == nil {
		logger = log.New("handler")
	}
	return &OrderHandler{gw: gw, storage: storage, mailer: mailer, events: events, log: logger}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/api/checkout", h.checkout, requireAuth)

	g := e.Group("/api/orders", requireAuth)
	g.GET("", h.myOrders)
	g.GET("/reviewable", h.reviewableOrders)
	g.GET("/:id", h.order)
	g.GET("/:id/details", h.orderDetails)
	g.GET("/:id/confirmation", h.orderConfirmation)
	g.GET("/:id/progress", h.orderProgress)
	g.GET("/:id/reviewable-products", h.reviewableProducts)
	g.GET("/:id/can-review/:productId", h.canReviewOrderProduct)

	r := e.Group("/api/reviews", requireAuth)
	r.POST("", h.createReview)
	r.GET("/mine", h.myReviews)
	r.GET("/can-review/:productId", h.canReviewProduct)

	// チェックアウト画面の選択肢
	e.GET("/api/payment-methods", h.paymentMethods)
	e.GET("/api/delivery-methods", h.deliveryMethods)
}

func (h *OrderHandler) paymentMethods(c echo.Context) error {
	out, err := h.gw.PaymentMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *OrderHandler) deliveryMethods(c echo.Context) error {
	out, err := h.gw.DeliveryMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

type CheckoutRequest struct {
	UserID         int64                `json:"userId"`
	CustomerName   string               `json:"customerName"`
	CustomerEmail  string               `json:"customerEmail"`
	PaymentMethod  model.PaymentMethod  `json:"paymentMethod"`
	DeliveryMethod model.DeliveryMethod `json:"deliveryMethod"`
	AddressID      int64                `json:"addressId,omitempty"`
	Address        *model.Address       `json:"address,omitempty"`
}

type checkoutResponse struct {
	Order   model.Order    `json:"order"`
	Payment *model.Payment `json:"payment,omitempty"`
}

// checkout はカートの内容で注文を確定する。
// 注文作成→（現金払いの場合）支払い作成→カート破棄→確認メール。
// メールは失敗しても注文は成立済みなのでログに残すだけ。
func (h *OrderHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	cart := usecase.NewCartStore(ctx, h.storage, middleware.SessionID(c))

	if cart.ItemCount() == 0 {
		return writeError(c, usecase.NewHTTPError(http.StatusBadRequest, "cart is empty"))
	}

	items := cart.Items()
	orderItems := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, map[string]interface{}{
			"productId": it.ProductID,
			"quantity":  it.Quantity,
			"price":     it.Price,
		})
	}

	payload := map[string]interface{}{
		"userId":         req.UserID,
		"orderItems":     orderItems,
		"totalAmount":    cart.Total(),
		"paymentMethod":  req.PaymentMethod,
		"deliveryMethod": req.DeliveryMethod,
	}
	if req.AddressID != 0 {
		payload["addressId"] = req.AddressID
	}

	order, err := h.gw.CreateCompleteOrder(ctx, payload)
	if err != nil {
		return writeError(c, err)
	}

	var payment *model.Payment
	switch req.PaymentMethod {
	case model.PaymentMethodCashOnDelivery:
		p, payErr := h.gw.CreateCashOnDeliveryPayment(ctx, order.OrderID, req.UserID)
		if payErr != nil {
			h.log.Errorf("payment creation failed for order %d: %v", order.OrderID, payErr)
		} else {
			payment = &p
		}
	case model.PaymentMethodCashOnCollection:
		p, payErr := h.gw.CreateCashOnCollectionPayment(ctx, order.OrderID, req.UserID)
		if payErr != nil {
			h.log.Errorf("payment creation failed for order %d: %v", order.OrderID, payErr)
		} else {
			payment = &p
		}
	}

	if err := cart.Clear(ctx); err != nil {
		h.log.Errorf("failed to clear cart after checkout of order %d: %v", order.OrderID, err)
	}

	h.notifyConfirmed(order, items, req)

	return c.JSON(http.StatusOK, checkoutResponse{Order: order, Payment: payment})
}

// 確認メール。キューがあれば積み、無ければその場で送る。
func (h *OrderHandler) notifyConfirmed(order model.Order, cartItems []model.CartItem, req CheckoutRequest) {
	orderItems := order.OrderItems
	if len(orderItems) == 0 {
		// バックエンドが明細を返さないことがあるのでカート側で補う
		orderItems = make([]model.OrderItem, 0, len(cartItems))
		for _, it := range cartItems {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Price:       it.Price,
				Quantity:    it.Quantity,
				ImageURL:    it.ImageURL,
			})
		}
	}

	orderDate := order.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	ev := notify.OrderEvent{
		Type:          notify.EventOrderConfirmed,
		CustomerEmail: req.CustomerEmail,
		Order: notify.OrderData{
			OrderID:         order.OrderID,
			CustomerName:    req.CustomerName,
			OrderDate:       orderDate,
			TotalAmount:     float64(order.TotalAmount),
			PaymentMethod:   req.PaymentMethod,
			DeliveryMethod:  req.DeliveryMethod,
			DeliveryAddress: req.Address,
			OrderItems:      orderItems,
		},
	}

	if h.events != nil {
		if err := h.events.Publish(context.Background(), ev); err != nil {
			h.log.Errorf("failed to queue confirmation email for order %d: %v", order.OrderID, err)
		}
		return
	}

	if h.mailer != nil {
		// リクエスト完了を待たせない
		go h.mailer.SendOrderConfirmation(context.Background(), ev.Order, ev.CustomerEmail)
	}
}

func (h *OrderHandler) myOrders(c echo.Context) error {
	orders, err := h.gw.MyOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) order(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	order, err := h.gw.OrderByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) orderDetails(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	details, err := h.gw.CompleteOrderDetails(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, details)
}

type orderConfirmationResponse struct {
	Order          model.Order    `json:"order"`
	Payment        *model.Payment `json:"payment,omitempty"`
	Delivery       *model.Delivery `json:"delivery,omitempty"`
	StatusDisplay  status.Display `json:"statusDisplay"`
	ReviewEligible bool           `json:"reviewEligible"`
}

// 注文確認ページ用の集約ビュー。支払い・配送が未作成でも注文だけで返す。
func (h *OrderHandler) orderConfirmation(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	ctx := c.Request().Context()

	order, err := h.gw.OrderByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	res := orderConfirmationResponse{
		Order:          order,
		StatusDisplay:  status.OrderDisplay(string(order.OrderStatus)),
		ReviewEligible: status.ReviewEligible(string(order.OrderStatus)),
	}

	if payment, payErr := h.gw.PaymentByOrder(ctx, id); payErr == nil {
		res.Payment = &payment
	}
	if delivery, delErr := h.gw.DeliveryByOrder(ctx, id); delErr == nil {
		res.Delivery = &delivery
	}

	return c.JSON(http.StatusOK, res)
}

type orderProgressResponse struct {
	Status  model.OrderStatus         `json:"status"`
	Display status.Display            `json:"display"`
	Step    int                       `json:"step"`
	Steps   []status.ProgressStepInfo `json:"steps"`
}

// 注文の進捗バー用データ。
func (h *OrderHandler) orderProgress(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	order, err := h.gw.OrderByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	raw := string(order.OrderStatus)
	return c.JSON(http.StatusOK, orderProgressResponse{
		Status:  status.NormalizeOrder(raw),
		Display: status.OrderDisplay(raw),
		Step:    status.ProgressIndex(raw),
		Steps:   status.ProgressSteps(),
	})
}

func (h *OrderHandler) reviewableOrders(c echo.Context) error {
	orders, err := h.gw.ReviewableOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) reviewableProducts(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	products, err := h.gw.ReviewableProductsForOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *OrderHandler) canReviewOrderProduct(c echo.Context) error {
	orderID, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.gw.CanReviewOrderProduct(c.Request().Context(), orderID, productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *OrderHandler) createReview(c echo.Context) error {
	var req gateway.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	review, err := h.gw.CreateReview(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *OrderHandler) myReviews(c echo.Context) error {
	reviews, err := h.gw.MyReviews(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *OrderHandler) canReviewProduct(c echo.Context) error {
	productID, err := paramInt64(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.gw.CanReviewProduct(c.Request().Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}
