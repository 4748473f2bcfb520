package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_records/internal/models"
)

func TestCreateCustomerRequest_Build(t *testing.T) {
	var req CreateCustomerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Jane","surname":"Doe","email":"jane.doe@example.com"}`), &req))

	c, err := req.Build()
	require.NoError(t, err)
	assert.Zero(t, c.ID)
	assert.Equal(t, "Jane", *c.Name)
	assert.Equal(t, "Doe", *c.Surname)
	assert.Equal(t, "jane.doe@example.com", *c.Email)
}

func TestCreateRequests_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		build   func() error
		missing string
	}{
		{
			name: "customer",
			build: func() error {
				_, err := CreateCustomerRequest{Name: strp("Jane")}.Build()
				return err
			},
			missing: "surname, email",
		},
		{
			name: "category",
			build: func() error {
				_, err := CreateCategoryRequest{}.Build()
				return err
			},
			missing: "title, description",
		},
		{
			name: "shop item",
			build: func() error {
				_, err := CreateShopItemRequest{Title: strp("Pen"), Description: strp("Blue")}.Build()
				return err
			},
			missing: "price",
		},
		{
			name: "order",
			build: func() error {
				_, err := CreateOrderRequest{}.Build()
				return err
			},
			missing: "customer_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.ErrorIs(t, err, ErrMissingField)
			assert.Equal(t, "missing required field: "+tt.missing, err.Error())
		})
	}
}

func TestCreateShopItemRequest_ZeroPriceIsPresent(t *testing.T) {
	var req CreateShopItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Free","description":"Gift","price":0}`), &req))

	item, err := req.Build()
	require.NoError(t, err)
	assert.Equal(t, 0.0, *item.Price)
}

func TestUpdateShopItemRequest_Apply(t *testing.T) {
	price := 999.99
	item := &models.ShopItem{ID: 1, Title: strp("Laptop"), Description: strp("A powerful laptop"), Price: &price}

	var req UpdateShopItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Updated Laptop","price":899.99}`), &req))
	req.Apply(item)

	assert.EqualValues(t, 1, item.ID)
	assert.Equal(t, "Updated Laptop", *item.Title)
	assert.Equal(t, "A powerful laptop", *item.Description)
	assert.Equal(t, 899.99, *item.Price)
}

func TestUpdateCustomerRequest_NullClears(t *testing.T) {
	c := &models.Customer{Name: strp("John"), Surname: strp("Doe"), Email: strp("john.doe@example.com")}

	var req UpdateCustomerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email":null}`), &req))
	req.Apply(c)

	assert.Nil(t, c.Email)
	assert.Equal(t, "John", *c.Name)
}

func TestUpdateOrderRequest_Apply(t *testing.T) {
	one := uint(1)
	o := &models.Order{ID: 3, CustomerID: &one}

	UpdateOrderRequest{CustomerID: Of(uint(7))}.Apply(o)
	assert.EqualValues(t, 7, *o.CustomerID)

	UpdateOrderRequest{}.Apply(o)
	assert.EqualValues(t, 7, *o.CustomerID)
}

func strp(s string) *string { return &s }
