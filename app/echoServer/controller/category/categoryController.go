package category

import (
	"log/slog"
	"net/http"
	"strconv"

	categorysvc "equiprental/service/category"
	"equiprental/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CategoryReq struct {
	Name string `json:"name" validate:"required"`
}

type Controller struct {
	Svc categorysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"message": err.Error(), "code": apperr.CodeOf(err)})
}

// GET /v1/categories
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "category list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/categories  (manager)
func (h *Controller) Add(c echo.Context) error {
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Add(c.Request().Context(), req.Name)
	if err != nil {
		return h.fail(c, "category add", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PUT /v1/categories/:id  (manager) — renames and retags items in one step.
func (h *Controller) Rename(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.Rename(c.Request().Context(), id, req.Name); err != nil {
		return h.fail(c, "category rename", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "renamed"})
}

// DELETE /v1/categories/:id  (manager)
func (h *Controller) Remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Remove(c.Request().Context(), id); err != nil {
		return h.fail(c, "category remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
