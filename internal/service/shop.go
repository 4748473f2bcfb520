package service

import (
	"github.com/Skotchmaster/shop_records/internal/cache"
	"github.com/Skotchmaster/shop_records/internal/events"
	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/repo"
)

// Resource names used in cache keys and event types.
const (
	CustomerResource = "customer"
	CategoryResource = "category"
	ShopItemResource = "shop_item"
	OrderResource    = "order"
)

type ShopService struct {
	Customers  *CRUD[models.Customer, *models.Customer]
	Categories *CRUD[models.ShopItemCategory, *models.ShopItemCategory]
	ShopItems  *CRUD[models.ShopItem, *models.ShopItem]
	Orders     *CRUD[models.Order, *models.Order]
}

// NewShopService wires one CRUD flow per resource. rc may be nil.
func NewShopService(r *repo.GormRepo, rc *cache.RecordCache, notifiers ...events.Notifier) *ShopService {
	return &ShopService{
		Customers: &CRUD[models.Customer, *models.Customer]{
			Resource: CustomerResource, Table: r.Customers, Cache: rc, Notifiers: notifiers,
		},
		Categories: &CRUD[models.ShopItemCategory, *models.ShopItemCategory]{
			Resource: CategoryResource, Table: r.Categories, Cache: rc, Notifiers: notifiers,
		},
		ShopItems: &CRUD[models.ShopItem, *models.ShopItem]{
			Resource: ShopItemResource, Table: r.ShopItems, Cache: rc, Notifiers: notifiers,
		},
		Orders: &CRUD[models.Order, *models.Order]{
			Resource: OrderResource, Table: r.Orders, Cache: rc, Notifiers: notifiers,
		},
	}
}
