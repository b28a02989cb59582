package approval

import (
	"log/slog"
	"net/http"
	"strconv"

	"equiprental/model"
	approvalsvc "equiprental/service/approval"
	"equiprental/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ApproveReq struct {
	Role string `json:"role" validate:"required,oneof=teacher manager"`
}

type Controller struct {
	Svc approvalsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/approvals  (manager) — signup queue, newest first.
func (h *Controller) ListWaiting(c echo.Context) error {
	rows, err := h.Svc.ListWaiting(c.Request().Context())
	if err != nil {
		h.Log.Error("approval list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/approvals/:id  (manager)
func (h *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ApproveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	if err := h.Svc.Approve(c.Request().Context(), id, model.Role(req.Role)); err != nil {
		if apperr.KindOf(err) == apperr.KindUnknown {
			h.Log.Error("approve", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
		return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": err.Error(), "code": apperr.CodeOf(err)})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "approved"})
}
