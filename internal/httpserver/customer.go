package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/transport"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

type CustomerHTTP struct {
	*ResourceHTTP[models.Customer, *models.Customer, transport.CreateCustomerRequest, transport.UpdateCustomerRequest]
}

func (h *CustomerHTTP) Mount(g *echo.Group) {
	h.ResourceHTTP.Mount(g)
	g.DELETE("", h.DeleteAll)
}

func (h *CustomerHTTP) DeleteAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete_all")

	n, err := h.Svc.DeleteAll(ctx)
	if err != nil {
		l.Error("delete_all_failed", "status", 500, "reason", "cannot delete customers", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	l.Info("delete_all_success", "deleted", n)
	return c.JSON(http.StatusOK, echo.Map{"message": "All customers deleted", "deleted": n})
}
