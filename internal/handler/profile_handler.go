package handler

import (
	"net/http"

	"storefront/internal/gateway"

	"github.com/labstack/echo/v4"
)

// マイページ系（個人情報・住所帳）のHTTP。すべて認証必須。
type ProfileHandler struct {
	gw *gateway.Client
}

// DI
func NewProfileHandler(gw *gateway.Client) *ProfileHandler {
	return &ProfileHandler{gw: gw}
}

func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/api/profile", requireAuth)
	g.GET("", h.profile)
	g.PUT("/:userId", h.update)
	g.PUT("/:userId/password", h.changePassword)

	a := e.Group("/api/addresses", requireAuth)
	a.GET("/types", h.addressTypes)
	a.GET("/user/:userId", h.userAddresses)
	a.GET("/user/:userId/type/:type", h.userAddressesByType)
	a.GET("/user/:userId/exists", h.userHasAddresses)
	a.POST("", h.createAddress)
	a.PUT("/:id", h.updateAddress)
	a.DELETE("/:id/user/:userId", h.deleteAddress)
}

func (h *ProfileHandler) profile(c echo.Context) error {
	out, err := h.gw.CurrentUserProfile(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProfileHandler) update(c echo.Context) error {
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.UpdateUser(c.Request().Context(), userID, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProfileHandler) changePassword(c echo.Context) error {
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.ChangePassword(c.Request().Context(), userID, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProfileHandler) addressTypes(c echo.Context) error {
	out, err := h.gw.AddressTypes(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProfileHandler) userAddresses(c echo.Context) error {
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	addresses, err := h.gw.UserAddresses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addresses)
}

func (h *ProfileHandler) userAddressesByType(c echo.Context) error {
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	addresses, err := h.gw.UserAddressesByType(c.Request().Context(), userID, c.Param("type"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, addresses)
}

func (h *ProfileHandler) userHasAddresses(c echo.Context) error {
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.gw.UserHasAddresses(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}

func (h *ProfileHandler) createAddress(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	address, err := h.gw.CreateAddress(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, address)
}

func (h *ProfileHandler) updateAddress(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	address, err := h.gw.UpdateAddress(c.Request().Context(), id, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, address)
}

func (h *ProfileHandler) deleteAddress(c echo.Context) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	userID, err := paramInt64(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.gw.DeleteAddress(c.Request().Context(), id, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}
