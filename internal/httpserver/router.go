package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/service"
	"github.com/Skotchmaster/shop_records/internal/transport"
)

type Deps struct {
	Svc    *service.ShopService
	Health *HealthHTTP
	// Search is nil when no search backend is configured.
	Search *SearchHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", d.Health.Live)
	e.GET("/health/ready", d.Health.Ready)

	customers := &CustomerHTTP{
		ResourceHTTP: &ResourceHTTP[models.Customer, *models.Customer, transport.CreateCustomerRequest, transport.UpdateCustomerRequest]{
			Svc: d.Svc.Customers, Label: "Customer",
		},
	}
	customers.Mount(e.Group("/customers"))

	categories := &ResourceHTTP[models.ShopItemCategory, *models.ShopItemCategory, transport.CreateCategoryRequest, transport.UpdateCategoryRequest]{
		Svc: d.Svc.Categories, Label: "Category",
	}
	categories.Mount(e.Group("/shopitemcategories"))

	items := e.Group("/shopitems")
	if d.Search != nil {
		items.GET("/search", d.Search.SearchShopItems)
	}
	shopItems := &ResourceHTTP[models.ShopItem, *models.ShopItem, transport.CreateShopItemRequest, transport.UpdateShopItemRequest]{
		Svc: d.Svc.ShopItems, Label: "Shop item",
	}
	shopItems.Mount(items)

	orders := &ResourceHTTP[models.Order, *models.Order, transport.CreateOrderRequest, transport.UpdateOrderRequest]{
		Svc: d.Svc.Orders, Label: "Order",
	}
	orders.Mount(e.Group("/orders"))
}
