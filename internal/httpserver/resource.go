package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_records/internal/service"
	"github.com/Skotchmaster/shop_records/internal/transport"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

// ResourceHTTP serves the five CRUD routes of one resource.
// C and U are the create and update request bodies.
type ResourceHTTP[T any, PT service.Record[T], C transport.Creator[T], U transport.Updater[T]] struct {
	Svc *service.CRUD[T, PT]
	// Label is the human name used in messages, e.g. "Shop item".
	Label string
}

func (h *ResourceHTTP[T, PT, C, U]) Mount(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ResourceHTTP[T, PT, C, U]) notFound() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, h.Label+" not found")
}

func (h *ResourceHTTP[T, PT, C, U]) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Svc.Resource+".list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("list_failed", "status", 500, "reason", "cannot read records", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, PT(&items[i]).ToMap())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ResourceHTTP[T, PT, C, U]) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Svc.Resource+".get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("get_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	rec, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_failed", "status", 404, "reason", "record not found", "id", id)
			return h.notFound()
		}
		l.Error("get_failed", "status", 500, "reason", "cannot read record", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, PT(rec).ToMap())
}

func (h *ResourceHTTP[T, PT, C, U]) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Svc.Resource+".create")

	var req C
	if err := bindBody(c, &req); err != nil {
		l.Warn("create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.Create(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_failed", "status", 400, "reason", "validation", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("create_failed", "status", 500, "reason", "cannot insert record", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("create_success", "id", PT(rec).RecordID())
	return c.JSON(http.StatusCreated, PT(rec).ToMap())
}

func (h *ResourceHTTP[T, PT, C, U]) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Svc.Resource+".update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("update_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req U
	if err := bindBody(c, &req); err != nil {
		l.Warn("update_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	rec, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_failed", "status", 404, "reason", "record not found", "id", id)
			return h.notFound()
		}
		l.Error("update_failed", "status", 500, "reason", "cannot save record", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("update_success", "id", id)
	return c.JSON(http.StatusOK, PT(rec).ToMap())
}

func (h *ResourceHTTP[T, PT, C, U]) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", h.Svc.Resource+".delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("delete_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_failed", "status", 404, "reason", "record not found", "id", id)
			return h.notFound()
		}
		l.Error("delete_failed", "status", 500, "reason", "cannot delete record", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("delete_success", "id", id)
	return c.JSON(http.StatusOK, echo.Map{"message": h.Label + " deleted"})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// bindBody decodes only the request body; an empty body leaves dst untouched.
func bindBody(c echo.Context, dst any) error {
	return (&echo.DefaultBinder{}).BindBody(c, dst)
}
