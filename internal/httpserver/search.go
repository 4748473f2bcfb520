package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/util"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.ShopItem, error)
}

type SearchHTTP struct {
	Index Searcher
}

func (h *SearchHTTP) SearchShopItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "shop_item.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_failed", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := util.Calculate(page, size)

	total, items, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 502, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "search unavailable")
	}

	out := make([]map[string]any, 0, len(items))
	for i := range items {
		out = append(out, items[i].ToMap())
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": out})
}
