package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shop_records/internal/models"
	"github.com/Skotchmaster/shop_records/internal/util"
)

type fakeSearcher struct {
	query string
	from  int
	size  int
	items []models.ShopItem
	err   error
}

func (f *fakeSearcher) Search(_ context.Context, query string, from, size int) (int64, []models.ShopItem, error) {
	f.query, f.from, f.size = query, from, size
	if f.err != nil {
		return 0, nil, f.err
	}
	return int64(len(f.items)), f.items, nil
}

func strp(s string) *string { return &s }

func TestSearchShopItems(t *testing.T) {
	price := 999.99
	fake := &fakeSearcher{items: []models.ShopItem{
		{ID: 1, Title: strp("Laptop"), Description: strp("A powerful laptop"), Price: &price},
	}}
	env := newTestEnv(t, withSearch(fake))

	rec, body := env.do(http.MethodGet, "/shopitems/search?q=laptop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "laptop", fake.query)
	assert.Zero(t, fake.from)
	assert.Equal(t, util.DefaultPageSize, fake.size)
	assert.EqualValues(t, 1, body["total"])

	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "Laptop", items[0].(map[string]any)["title"])
}

func TestSearchShopItems_Paging(t *testing.T) {
	fake := &fakeSearcher{}
	env := newTestEnv(t, withSearch(fake))

	rec, body := env.do(http.MethodGet, "/shopitems/search?q=pen&page=3&size=20", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 40, fake.from)
	assert.Equal(t, 20, fake.size)
	assert.Equal(t, []any{}, body["items"])
}

func TestSearchShopItems_EmptyQuery(t *testing.T) {
	env := newTestEnv(t, withSearch(&fakeSearcher{}))

	rec, body := env.do(http.MethodGet, "/shopitems/search?q=%20", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "query parameter q is required", body["error"])
}

func TestSearchShopItems_BackendError(t *testing.T) {
	env := newTestEnv(t, withSearch(&fakeSearcher{err: errors.New("boom")}))

	rec, body := env.do(http.MethodGet, "/shopitems/search?q=x", nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "search unavailable", body["error"])
}

func TestSearchShopItems_NotMountedWithoutIndex(t *testing.T) {
	env := newTestEnv(t)

	// Without a search index the path falls through to GET /shopitems/:id.
	rec, body := env.do(http.MethodGet, "/shopitems/search?q=x", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "id is not an integer", body["error"])
}
