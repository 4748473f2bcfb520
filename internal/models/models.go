package models

// Every record exposes its plain-map form, which is also its JSON body.

type Customer struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Email   *string `json:"email"`
}

func (c *Customer) RecordID() uint { return c.ID }

func (c *Customer) ToMap() map[string]any {
	return map[string]any{
		"id":      c.ID,
		"name":    c.Name,
		"surname": c.Surname,
		"email":   c.Email,
	}
}

type ShopItemCategory struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (c *ShopItemCategory) RecordID() uint { return c.ID }

func (c *ShopItemCategory) ToMap() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"title":       c.Title,
		"description": c.Description,
	}
}

type ShopItem struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (i *ShopItem) RecordID() uint { return i.ID }

func (i *ShopItem) ToMap() map[string]any {
	return map[string]any{
		"id":          i.ID,
		"title":       i.Title,
		"description": i.Description,
		"price":       i.Price,
	}
}

// Order.CustomerID is a plain column: customer existence is never checked.
type Order struct {
	ID         uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *uint `json:"customer_id"`
}

func (o *Order) RecordID() uint { return o.ID }

func (o *Order) ToMap() map[string]any {
	return map[string]any{
		"id":          o.ID,
		"customer_id": o.CustomerID,
	}
}

// OrderItem only exists in the schema; no endpoint reads or writes it.
type OrderItem struct {
	ID         uint  `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopItemID *uint `json:"shop_item_id"`
	Quantity   *int  `json:"quantity"`
}

func (i *OrderItem) RecordID() uint { return i.ID }

func (i *OrderItem) ToMap() map[string]any {
	return map[string]any{
		"id":           i.ID,
		"shop_item_id": i.ShopItemID,
		"quantity":     i.Quantity,
	}
}

// All lists every table, in creation order.
func All() []any {
	return []any{&Customer{}, &ShopItemCategory{}, &ShopItem{}, &Order{}, &OrderItem{}}
}
