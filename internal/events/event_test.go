package events

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ev := New("shop_item", Updated, 3, map[string]any{"id": 3})

	assert.Equal(t, "shop_item_updated", ev.Type)
	assert.Equal(t, "shop_item", ev.Resource)
	assert.Equal(t, Updated, ev.Kind)
	assert.EqualValues(t, 3, ev.RecordID)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.OccurredAt.IsZero())

	assert.NotEqual(t, ev.ID, New("shop_item", Updated, 3, nil).ID)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Notify(context.Background(), New("order", Deleted, 1, nil)))
	got := r.All()
	require.Len(t, got, 1)
	assert.Equal(t, "order_deleted", got[0].Type)
}

func TestRecorder_ConcurrentNotify(t *testing.T) {
	var r Recorder
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_ = r.Notify(context.Background(), New("customer", Created, id, nil))
		}(uint(i))
	}
	wg.Wait()

	assert.Len(t, r.All(), 50)
}
