package favorite

import (
	"log/slog"
	"net/http"

	"equiprental/app/echoServer/jwtx"
	favoritesvc "equiprental/service/favorite"
	"equiprental/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ToggleReq struct {
	Category string `json:"category" validate:"required"`
}

type Controller struct {
	Svc favoritesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/favorites
func (h *Controller) List(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.List(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("favorite list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/favorites/toggle
func (h *Controller) Toggle(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	var req ToggleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	rows, err := h.Svc.Toggle(c.Request().Context(), uid, req.Category)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnknown {
			h.Log.Error("favorite toggle", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": err.Error(), "code": apperr.CodeOf(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
