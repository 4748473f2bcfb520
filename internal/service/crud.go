package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/shop_records/internal/cache"
	"github.com/Skotchmaster/shop_records/internal/events"
	"github.com/Skotchmaster/shop_records/internal/repo"
	"github.com/Skotchmaster/shop_records/internal/transport"
	"github.com/Skotchmaster/shop_records/pkg/logging"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
)

const notifyTimeout = 5 * time.Second

// Record is the pointer side of a model type T.
type Record[T any] interface {
	*T
	RecordID() uint
	ToMap() map[string]any
}

// CRUD runs the uniform create/read/update/delete flow for one resource.
// Cache and Notifiers are optional.
type CRUD[T any, PT Record[T]] struct {
	Resource  string
	Table     *repo.Table[T]
	Cache     *cache.RecordCache
	Notifiers []events.Notifier
}

func (s *CRUD[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.Table.List(ctx)
}

func (s *CRUD[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	var (
		seen      cache.Version
		cacheable bool
	)
	if s.Cache != nil {
		if rec := s.cached(ctx, id); rec != nil {
			return rec, nil
		}
		// read the version before the row so a concurrent invalidation blocks the fill
		v, err := s.Cache.Version(ctx, s.Resource, id)
		if err != nil {
			logging.FromContext(ctx).Warn("cache_version_failed", "resource", s.Resource, "id", id, "error", err)
		} else {
			seen, cacheable = v, true
		}
	}

	rec, err := s.Table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s %d: %w", s.Resource, id, ErrNotFound)
	}

	if cacheable {
		if _, err := s.Cache.SetIfVersion(ctx, s.Resource, id, seen, rec); err != nil {
			logging.FromContext(ctx).Warn("cache_set_failed", "resource", s.Resource, "id", id, "error", err)
		}
	}
	return rec, nil
}

func (s *CRUD[T, PT]) Create(ctx context.Context, req transport.Creator[T]) (*T, error) {
	rec, err := req.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.Table.Insert(ctx, rec); err != nil {
		return nil, err
	}

	s.notify(ctx, events.Created, PT(rec))
	return rec, nil
}

func (s *CRUD[T, PT]) Update(ctx context.Context, id uint, req transport.Updater[T]) (*T, error) {
	rec, err := s.Table.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%s %d: %w", s.Resource, id, ErrNotFound)
	}

	req.Apply(rec)
	if err := s.Table.Update(ctx, rec); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.notify(ctx, events.Updated, PT(rec))
	return rec, nil
}

func (s *CRUD[T, PT]) Delete(ctx context.Context, id uint) error {
	rec, err := s.Table.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%s %d: %w", s.Resource, id, ErrNotFound)
	}

	if err := s.Table.Delete(ctx, rec); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.notify(ctx, events.Deleted, PT(rec))
	return nil
}

// DeleteAll removes every record of the resource and reports how many went.
// One deleted event is sent per removed record.
func (s *CRUD[T, PT]) DeleteAll(ctx context.Context) (int64, error) {
	removed, err := s.Table.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	if s.Cache != nil {
		if err := s.Cache.Purge(ctx, s.Resource); err != nil {
			logging.FromContext(ctx).Warn("cache_purge_failed", "resource", s.Resource, "error", err)
		}
	}
	for i := range removed {
		s.notify(ctx, events.Deleted, PT(&removed[i]))
	}
	return int64(len(removed)), nil
}

func (s *CRUD[T, PT]) cached(ctx context.Context, id uint) *T {
	if s.Cache == nil {
		return nil
	}
	var rec T
	hit, err := s.Cache.Get(ctx, s.Resource, id, &rec)
	if err != nil {
		logging.FromContext(ctx).Warn("cache_get_failed", "resource", s.Resource, "id", id, "error", err)
		return nil
	}
	if !hit {
		return nil
	}
	return &rec
}

func (s *CRUD[T, PT]) invalidate(ctx context.Context, id uint) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, s.Resource, id); err != nil {
		logging.FromContext(ctx).Warn("cache_invalidate_failed", "resource", s.Resource, "id", id, "error", err)
	}
}

// notify is best effort: the write is already committed, so failures are only logged.
func (s *CRUD[T, PT]) notify(ctx context.Context, kind events.Kind, rec PT) {
	if len(s.Notifiers) == 0 {
		return
	}
	ev := events.New(s.Resource, kind, rec.RecordID(), rec.ToMap())

	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	for _, n := range s.Notifiers {
		if err := n.Notify(nctx, ev); err != nil {
			logging.FromContext(ctx).Error("notify_failed", "event", ev.Type, "id", ev.RecordID, "error", err)
		}
	}
}
