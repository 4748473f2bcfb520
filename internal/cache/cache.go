package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "shop_records"

// RecordCache keeps single records as JSON under "shop_records:<resource>:<id>".
//
// Invalidation bumps a counter kept under "shop_records:v:...": one per record and one per
// resource. A reader takes the Version before loading from the database and stores the row
// with SetIfVersion, which refuses when an invalidation happened in between.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Version is the pair of invalidation counters seen by a reader.
type Version struct {
	Resource int64
	Record   int64
}

func New(addr, password string, db int, ttl time.Duration) *RecordCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewWithClient(client, ttl)
}

func NewWithClient(client *redis.Client, ttl time.Duration) *RecordCache {
	return &RecordCache{client: client, ttl: ttl}
}

func Key(resource string, id uint) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, resource, id)
}

func resourceVersionKey(resource string) string {
	return fmt.Sprintf("%s:v:%s", keyPrefix, resource)
}

func recordVersionKey(resource string, id uint) string {
	return fmt.Sprintf("%s:v:%s:%d", keyPrefix, resource, id)
}

// Get decodes the cached record into dst. A miss returns (false, nil).
func (c *RecordCache) Get(ctx context.Context, resource string, id uint, dst any) (bool, error) {
	data, err := c.client.Get(ctx, Key(resource, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RecordCache) Version(ctx context.Context, resource string, id uint) (Version, error) {
	return readVersion(ctx, c.client, resource, id)
}

type multiGetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

func readVersion(ctx context.Context, cmd multiGetter, resource string, id uint) (Version, error) {
	vals, err := cmd.MGet(ctx, resourceVersionKey(resource), recordVersionKey(resource, id)).Result()
	if err != nil {
		return Version{}, err
	}
	var v Version
	for i, dst := range []*int64{&v.Resource, &v.Record} {
		s, ok := vals[i].(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("version %q: %w", s, err)
		}
		*dst = n
	}
	return v, nil
}

// SetIfVersion stores v only while the counters still equal seen. It reports whether v was stored.
func (c *RecordCache) SetIfVersion(ctx context.Context, resource string, id uint, seen Version, v any) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, err
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := readVersion(ctx, tx, resource, id)
		if err != nil {
			return err
		}
		if cur != seen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, Key(resource, id), data, c.ttl)
			return nil
		})
		stored = err == nil
		return err
	}, resourceVersionKey(resource), recordVersionKey(resource, id))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Delete drops one cached record and bumps its version.
func (c *RecordCache) Delete(ctx context.Context, resource string, id uint) error {
	vkey := recordVersionKey(resource, id)
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, vkey)
		if c.ttl > 0 {
			p.Expire(ctx, vkey, 2*c.ttl)
		}
		p.Del(ctx, Key(resource, id))
		return nil
	})
	return err
}

// Purge drops every cached record of one resource and bumps the resource version.
func (c *RecordCache) Purge(ctx context.Context, resource string) error {
	if err := c.client.Incr(ctx, resourceVersionKey(resource)).Err(); err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", keyPrefix, resource), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RecordCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RecordCache) Close() error {
	return c.client.Close()
}
