package transport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/shop_records/internal/models"
)

var ErrMissingField = errors.New("missing required field")

// Creator builds a new record from a create request body.
type Creator[T any] interface {
	Build() (*T, error)
}

// Updater applies the fields present in an update request body.
type Updater[T any] interface {
	Apply(rec *T)
}

type required struct {
	missing []string
}

func (r *required) check(name string, present bool) {
	if !present {
		r.missing = append(r.missing, name)
	}
}

func (r *required) err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(r.missing, ", "))
}

type CreateCustomerRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Email   *string `json:"email"`
}

func (r CreateCustomerRequest) Build() (*models.Customer, error) {
	var req required
	req.check("name", r.Name != nil)
	req.check("surname", r.Surname != nil)
	req.check("email", r.Email != nil)
	if err := req.err(); err != nil {
		return nil, err
	}
	return &models.Customer{Name: r.Name, Surname: r.Surname, Email: r.Email}, nil
}

type UpdateCustomerRequest struct {
	Name    Field[string] `json:"name"`
	Surname Field[string] `json:"surname"`
	Email   Field[string] `json:"email"`
}

func (r UpdateCustomerRequest) Apply(c *models.Customer) {
	r.Name.ApplyTo(&c.Name)
	r.Surname.ApplyTo(&c.Surname)
	r.Email.ApplyTo(&c.Email)
}

type CreateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r CreateCategoryRequest) Build() (*models.ShopItemCategory, error) {
	var req required
	req.check("title", r.Title != nil)
	req.check("description", r.Description != nil)
	if err := req.err(); err != nil {
		return nil, err
	}
	return &models.ShopItemCategory{Title: r.Title, Description: r.Description}, nil
}

type UpdateCategoryRequest struct {
	Title       Field[string] `json:"title"`
	Description Field[string] `json:"description"`
}

func (r UpdateCategoryRequest) Apply(c *models.ShopItemCategory) {
	r.Title.ApplyTo(&c.Title)
	r.Description.ApplyTo(&c.Description)
}

type CreateShopItemRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (r CreateShopItemRequest) Build() (*models.ShopItem, error) {
	var req required
	req.check("title", r.Title != nil)
	req.check("description", r.Description != nil)
	req.check("price", r.Price != nil)
	if err := req.err(); err != nil {
		return nil, err
	}
	return &models.ShopItem{Title: r.Title, Description: r.Description, Price: r.Price}, nil
}

type UpdateShopItemRequest struct {
	Title       Field[string]  `json:"title"`
	Description Field[string]  `json:"description"`
	Price       Field[float64] `json:"price"`
}

func (r UpdateShopItemRequest) Apply(i *models.ShopItem) {
	r.Title.ApplyTo(&i.Title)
	r.Description.ApplyTo(&i.Description)
	r.Price.ApplyTo(&i.Price)
}

type CreateOrderRequest struct {
	CustomerID *uint `json:"customer_id"`
}

func (r CreateOrderRequest) Build() (*models.Order, error) {
	var req required
	req.check("customer_id", r.CustomerID != nil)
	if err := req.err(); err != nil {
		return nil, err
	}
	return &models.Order{CustomerID: r.CustomerID}, nil
}

type UpdateOrderRequest struct {
	CustomerID Field[uint] `json:"customer_id"`
}

func (r UpdateOrderRequest) Apply(o *models.Order) {
	r.CustomerID.ApplyTo(&o.CustomerID)
}
