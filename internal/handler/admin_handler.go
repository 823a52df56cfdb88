package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	"storefront/internal/notify"
	"storefront/internal/status"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// 管理画面系のHTTP。全ルート管理者ガード必須。
type AdminHandler struct {
	gw     *gateway.Client
	mailer *notify.EmailSender
	events *notify.Dispatcher
	log    *log.Logger
}

// DI
func NewAdminHandler(gw *gateway.Client, mailer *notify.EmailSender, events *notify.Dispatcher, logger *log.Logger) *AdminHandler {
	if logger == nil {
		logger = log.New("handler")
	}
	return &AdminHandler{gw: gw, mailer: mailer, events: events, log: logger}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, requireAdmin echo.MiddlewareFunc) {
	g := e.Group("/api/admin", requireAdmin)

	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.POST("/tyres", h.createTyre)
	g.POST("/tyres/bulk", h.createTyresBulk)

	g.GET("/orders", h.allOrders)
	g.GET("/orders/status/:status", h.ordersByStatus)
	g.PUT("/orders/:id/status", h.updateOrderStatus)
	g.PUT("/orders/:id/payment-status", h.updatePaymentStatus)
	g.PUT("/orders/:id/delivery-status", h.updateDeliveryStatus)
	g.PUT("/deliveries/:id/courier", h.updateCourier)
	g.DELETE("/orders/:id", h.deleteOrder)

	g.GET("/users", h.allUsers)
	g.POST("/users", h.createUser)
	g.DELETE("/users/:id", h.deleteUser)

	g.POST("/setup/create-admin", h.createAdmin)
	g.GET("/setup/admins", h.admins)

	// セットアップ状況は初回構築時に未認証で見る
	e.GET("/api/admin/setup/status", h.setupStatus)
	e.GET("/api/admin/setup/instructions", h.setupInstructions)
}

// multipart（商品画像つき）をそのまま中継する。
func (h *AdminHandler) createProduct(c echo.Context) error {
	out, err := h.gw.CreateProductWithImage(c.Request().Context(), c.Request().Header.Get("Content-Type"), c.Request().Body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) updateProduct(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.UpdateProduct(c.Request().Context(), id, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) deleteProduct(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.gw.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AdminHandler) createTyre(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.CreateTyre(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) createTyresBulk(c echo.Context) error {
	var body []map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.CreateTyresBulk(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) allOrders(c echo.Context) error {
	orders, err := h.gw.AllOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) ordersByStatus(c echo.Context) error {
	raw := c.Param("status")
	if !status.IsValidOrderStatus(raw) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	orders, err := h.gw.OrdersByStatus(c.Request().Context(), string(status.NormalizeOrder(raw)))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// 注文ステータスの更新。SHIPPEDになったら発送通知メールを出す。
func (h *AdminHandler) updateOrderStatus(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if !status.IsValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
	}

	next := status.NormalizeOrder(req.Status)

	order, err := h.gw.UpdateOrderStatus(c.Request().Context(), id, next)
	if err != nil {
		return writeError(c, err)
	}

	if next == model.OrderStatusShipped {
		h.notifyShipped(c.Request().Context(), order)
	}

	return c.JSON(http.StatusOK, order)
}

// 発送通知。宛先メールはバックエンドのユーザー情報から引く。
func (h *AdminHandler) notifyShipped(ctx context.Context, order model.Order) {
	raw, err := h.gw.UserByID(ctx, order.UserID)
	if err != nil {
		h.log.Errorf("failed to look up user %d for shipped email: %v", order.UserID, err)
		return
	}

	var user struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	}
	if err := json.Unmarshal(raw, &user); err != nil || user.Email == "" {
		h.log.Errorf("no email address for user %d, skipping shipped notification", order.UserID)
		return
	}

	ev := notify.OrderEvent{
		Type:          notify.EventOrderShipped,
		CustomerEmail: user.Email,
		Order: notify.OrderData{
			OrderID:      order.OrderID,
			CustomerName: user.FirstName,
			OrderDate:    order.OrderDate,
			TotalAmount:  float64(order.TotalAmount),
			OrderItems:   order.OrderItems,
			Shipped:      true,
		},
	}

	if h.events != nil {
		if err := h.events.Publish(context.Background(), ev); err != nil {
			h.log.Errorf("failed to queue shipped email for order %d: %v", order.OrderID, err)
		}
		return
	}

	if h.mailer != nil {
		go h.mailer.SendOrderShipped(context.Background(), ev.Order, ev.CustomerEmail)
	}
}

func (h *AdminHandler) updatePaymentStatus(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	payment, err := h.gw.UpdateOrderPaymentStatus(c.Request().Context(), id, status.NormalizePayment(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *AdminHandler) updateDeliveryStatus(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	delivery, err := h.gw.UpdateOrderDeliveryStatus(c.Request().Context(), id, status.NormalizeDelivery(req.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, delivery)
}

type updateCourierRequest struct {
	CourierName string `json:"courierName"`
}

func (h *AdminHandler) updateCourier(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateCourierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	delivery, err := h.gw.UpdateDeliveryCourier(c.Request().Context(), id, req.CourierName)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, delivery)
}

func (h *AdminHandler) deleteOrder(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.gw.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *AdminHandler) allUsers(c echo.Context) error {
	out, err := h.gw.AllUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) createUser(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.CreateUser(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) deleteUser(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.gw.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) createAdmin(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.CreateAdmin(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) admins(c echo.Context) error {
	out, err := h.gw.Admins(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) setupStatus(c echo.Context) error {
	out, err := h.gw.AdminSetupStatus(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *AdminHandler) setupInstructions(c echo.Context) error {
	out, err := h.gw.AdminSetupInstructions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}
