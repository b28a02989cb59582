package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"equiprental/model"
	itemrepo "equiprental/repository/item"
	itemsvc "equiprental/service/item"
	"equiprental/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
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

// GET /v1/items?category=&q=&sort=
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), model.ItemFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("q"),
		SortBy:   c.QueryParam("sort"),
	})
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/items/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "item detail", err)
	}
	return c.JSON(http.StatusOK, row)
}

// POST /v1/items  (manager)
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	id, err := h.Svc.Create(c.Request().Context(), itemsvc.CreateReq{
		Name:     req.Name,
		Category: req.Category,
		ImageURL: req.ImageURL,
		TotalQty: req.TotalQty,
	})
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// PATCH /v1/items/:id  (manager)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	if err := h.Svc.Update(c.Request().Context(), id, itemrepo.UpdatePatch{
		Name:     req.Name,
		Category: req.Category,
		ImageURL: req.ImageURL,
		TotalQty: req.TotalQty,
	}); err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

// DELETE /v1/items/:id  (manager)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "item delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}
