package cached

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"course-service/internal/adapter/cache"
)

// loadTimeout bounds a shared database read. The read outlives the caller that
// started it, so it cannot rely on that caller's deadline.
const loadTimeout = 5 * time.Second

// readThrough fills the cache from the database one id at a time.
//
// The generation of the id is read before the database. A write path that
// commits and invalidates in between bumps the generation, so the fill is
// dropped instead of caching the row it read before the write.
type readThrough[T any] struct {
	name    string
	cache   cache.EntityCache[T]
	load    func(context.Context, int64) (*T, error)
	timeout time.Duration
	log     *zap.Logger
	group   singleflight.Group
}

func newReadThrough[T any](name string, c cache.EntityCache[T], load func(context.Context, int64) (*T, error), log *zap.Logger) *readThrough[T] {
	return &readThrough[T]{name: name, cache: c, load: load, timeout: loadTimeout, log: log}
}

func (r *readThrough[T]) get(ctx context.Context, id int64) (*T, error) {
	gen := int64(-1) // unknown: read the database but never fill
	if r.cache != nil {
		v, err := r.cache.Get(ctx, id)
		switch {
		case err != nil:
			r.log.Warn("cache get error, falling back to database", zap.String("entity", r.name), zap.Int64("id", id), zap.Error(err))
		case v != nil:
			return v, nil
		}

		if g, err := r.cache.Generation(ctx, id); err != nil {
			r.log.Warn("cache generation error, skipping fill", zap.String("entity", r.name), zap.Int64("id", id), zap.Error(err))
		} else {
			gen = g
		}
	}

	// Concurrent misses for the same id and generation share one database read.
	ch := r.group.DoChan(fmt.Sprintf("%s:%d:%d", r.name, id, gen), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		v, err := r.load(loadCtx, id)
		if err != nil {
			return nil, err
		}

		if gen >= 0 {
			if _, err := r.cache.SetIfGeneration(loadCtx, id, gen, v); err != nil {
				r.log.Warn("failed to fill cache", zap.String("entity", r.name), zap.Int64("id", id), zap.Error(err))
			}
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Callers may share the value; each gets its own copy.
		v := *res.Val.(*T)
		return &v, nil
	}
}
