package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_records/internal/models"
	pkgdb "github.com/Skotchmaster/shop_records/pkg/db"
)

func newRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := pkgdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := New(db)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func strp(s string) *string { return &s }

func TestTableNames(t *testing.T) {
	r := newRepo(t)

	want := []string{"customers", "shop_item_categories", "shop_items", "orders", "order_items"}
	for i, m := range models.All() {
		name, err := r.TableName(m)
		require.NoError(t, err)
		assert.Equal(t, want[i], name)
	}
}

func TestTable_GetAbsent(t *testing.T) {
	r := newRepo(t)

	c, err := r.Customers.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestTable_InsertUpdateDelete(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	cat := &models.ShopItemCategory{Title: strp("Books"), Description: strp("Various books")}
	require.NoError(t, r.Categories.Insert(ctx, cat))
	assert.EqualValues(t, 1, cat.ID)

	cat.Description = nil
	require.NoError(t, r.Categories.Update(ctx, cat))

	got, err := r.Categories.Get(ctx, cat.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Books", *got.Title)
	assert.Nil(t, got.Description)

	require.NoError(t, r.Categories.Delete(ctx, cat))
	assert.ErrorIs(t, r.Categories.Delete(ctx, cat), gorm.ErrRecordNotFound)

	n, err := r.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTable_NullColumnsRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	item := &models.OrderItem{}
	require.NoError(t, r.OrderItems.Insert(ctx, item))

	got, err := r.OrderItems.Get(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.ShopItemID)
	assert.Nil(t, got.Quantity)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	id := uint(1)
	require.NoError(t, r.Customers.Insert(ctx, &models.Customer{Name: strp("A")}))
	require.NoError(t, r.Orders.Insert(ctx, &models.Order{CustomerID: &id}))

	require.NoError(t, r.Clear(ctx))

	customers, err := r.Customers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
	orders, err := r.Orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPing(t *testing.T) {
	assert.NoError(t, newRepo(t).Ping(context.Background()))
}

func TestTable_DeleteAllReturnsRemovedRows(t *testing.T) {
	ctx := context.Background()
	r := newRepo(t)

	for i := 0; i < deleteBatch+2; i++ {
		require.NoError(t, r.Categories.Insert(ctx, &models.ShopItemCategory{Title: strp("c")}))
	}

	removed, err := r.Categories.DeleteAll(ctx)
	require.NoError(t, err)
	require.Len(t, removed, deleteBatch+2)
	assert.EqualValues(t, 1, removed[0].ID)
	assert.EqualValues(t, deleteBatch+2, removed[len(removed)-1].ID)

	n, err := r.Categories.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	removed, err = r.Categories.DeleteAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, removed)
	assert.Empty(t, removed)
}
