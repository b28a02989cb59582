package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"equiprental/app/echoServer/jwtx"
	rs "equiprental/service/rental"
	"equiprental/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
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

// POST /v1/rentals/checkout — each cart line checks out on its own; a failed
// line never blocks the rest, the response reports every line's outcome.
func (h *Controller) Checkout(c echo.Context) error {
	var req CheckoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	lines := make([]rs.CheckoutLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		due, err := time.Parse("2006-01-02", l.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid due_date"})
		}
		lines = append(lines, rs.CheckoutLine{ItemID: l.ItemID, Qty: l.Qty, DueDate: due})
	}

	results, err := h.Svc.CheckoutBatch(c.Request().Context(), uid, lines)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindPartial {
			return c.JSON(http.StatusMultiStatus, echo.Map{
				"message": err.Error(),
				"results": results,
			})
		}
		return h.fail(c, "checkout", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"results": results})
}

// POST /v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	if err := h.Svc.Return(c.Request().Context(), uid, id, rs.ReturnReq{
		ReturnQty: req.ReturnQty,
		BrokenQty: req.BrokenQty,
		ProofURL:  req.ProofURL,
		Revision:  req.Revision,
	}); err != nil {
		return h.fail(c, "return", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned"})
}

// POST /v1/rentals/:id/force-return  (manager)
func (h *Controller) ForceReturn(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ForceReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.Svc.ForceReturn(c.Request().Context(), id, req.Loss); err != nil {
		return h.fail(c, "force return", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "returned"})
}

// GET /v1/rentals/my
func (h *Controller) MyRentals(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	rows, err := h.Svc.MyRentals(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "my rentals", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/active  (manager)
func (h *Controller) Active(c echo.Context) error {
	rows, err := h.Svc.ActiveRentals(c.Request().Context())
	if err != nil {
		return h.fail(c, "active rentals", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/by-holder  (manager)
func (h *Controller) ByHolder(c echo.Context) error {
	rows, err := h.Svc.ByHolder(c.Request().Context())
	if err != nil {
		return h.fail(c, "rentals by holder", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/rentals/broken  (manager)
func (h *Controller) BrokenHistory(c echo.Context) error {
	rows, err := h.Svc.BrokenHistory(c.Request().Context())
	if err != nil {
		return h.fail(c, "broken history", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
