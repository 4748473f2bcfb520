package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/shop_records/internal/events"
	"github.com/Skotchmaster/shop_records/internal/models"
)

// Resource is the event resource name whose records are indexed.
const Resource = "shop_item"

// Index mirrors shop items into an Elasticsearch index.
type Index struct {
	ES   *elasticsearch.Client
	Name string
}

// Notify keeps the index in step with committed shop item changes.
func (ix *Index) Notify(ctx context.Context, ev events.Event) error {
	if ev.Resource != Resource {
		return nil
	}
	id := strconv.FormatUint(uint64(ev.RecordID), 10)

	if ev.Kind == events.Deleted {
		res, err := ix.ES.Delete(ix.Name, id, ix.ES.Delete.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("search delete: %w", err)
		}
		defer res.Body.Close()
		if res.IsError() && res.StatusCode != http.StatusNotFound {
			return responseError("search delete", res.Status(), res.Body)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(ev.Record); err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	res, err := ix.ES.Index(ix.Name, &buf,
		ix.ES.Index.WithContext(ctx),
		ix.ES.Index.WithDocumentID(id),
	)
	if err != nil {
		return fmt.Errorf("search index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("search index", res.Status(), res.Body)
	}
	return nil
}

// Reindex drops the index and indexes items again, so rows written outside the event
// stream such as seeded ones become searchable and removed rows disappear.
func (ix *Index) Reindex(ctx context.Context, items []models.ShopItem) error {
	res, err := ix.ES.Indices.Delete([]string{ix.Name}, ix.ES.Indices.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search reindex: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("search reindex", res.Status(), res.Body)
	}

	for i := range items {
		ev := events.New(Resource, events.Created, items[i].ID, items[i].ToMap())
		if err := ix.Notify(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Search returns the total match count and one page of hits starting at from.
func (ix *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.ShopItem, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	res, err := ix.ES.Search(
		ix.ES.Search.WithContext(ctx),
		ix.ES.Search.WithIndex(ix.Name),
		ix.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return 0, []models.ShopItem{}, nil
		}
		return 0, nil, responseError("search", res.Status(), res.Body)
	}

	return decodeHits(res.Body)
}

func (ix *Index) Ping(ctx context.Context) error {
	res, err := ix.ES.Ping(ix.ES.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}

func decodeHits(r io.Reader) (int64, []models.ShopItem, error) {
	var out struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ShopItem `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return 0, nil, fmt.Errorf("search decode: %w", err)
	}

	items := make([]models.ShopItem, len(out.Hits.Hits))
	for i, hit := range out.Hits.Hits {
		items[i] = hit.Source
	}
	return out.Hits.Total.Value, items, nil
}

func responseError(op, status string, body io.Reader) error {
	msg, _ := io.ReadAll(body)
	return fmt.Errorf("%s: %s: %s", op, status, msg)
}
