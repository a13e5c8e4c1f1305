package author

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/cache"
)

// CachedRepo is the author entity repository: read-through on the listing
// and per-id keys, explicit refresh on the write paths. Cache failures never
// fail a read that the store can still serve; they are logged and the store
// is consulted instead.
type CachedRepo struct {
	store Store
	cache cache.Store
	log   *zap.Logger
}

var _ Repository = (*CachedRepo)(nil)

func NewCachedRepo(store Store, c cache.Store, log *zap.Logger) *CachedRepo {
	return &CachedRepo{store: store, cache: c, log: log}
}

// List returns all authors, serving the cached listing when present and
// repopulating it with a fresh TTL otherwise.
func (r *CachedRepo) List(ctx context.Context) ([]Author, error) {
	key := cache.ListingKey(cache.Authors)

	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("author listing cache read failed", zap.Error(err))
	} else if hit {
		authors, err := cache.Decode[[]Author](b)
		if err == nil {
			return authors, nil
		}
		r.log.Warn("author listing cache payload corrupt", zap.Error(err))
	}

	authors, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "author listing query failed")
	}
	if authors == nil {
		authors = []Author{}
	}

	r.setListing(ctx, authors)
	return authors, nil
}

// GetByID returns a single author. A cache hit is served without consulting
// the store.
func (r *CachedRepo) GetByID(ctx context.Context, id string) (Author, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Author{}, apperr.Validation("author id cannot be empty or contain only spaces")
	}

	key := cache.EntryKey(cache.Authors, id)
	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("author cache read failed", zap.String("id", id), zap.Error(err))
	} else if hit {
		a, err := cache.Decode[Author](b)
		if err == nil {
			return a, nil
		}
		r.log.Warn("author cache payload corrupt", zap.String("id", id), zap.Error(err))
	}

	a, found, err := r.store.FindByID(ctx, id)
	if err != nil {
		return Author{}, apperr.Wrap(err, apperr.CodeInternal, "author lookup failed")
	}
	if !found {
		return Author{}, apperr.NotFoundf("author %s not found", id)
	}

	r.UpsertOne(ctx, a)
	return a, nil
}

// UpsertOne writes the per-id entry so the cache mirrors store state after a
// successful store write.
func (r *CachedRepo) UpsertOne(ctx context.Context, a Author) {
	b, err := cache.Encode(a)
	if err != nil {
		r.log.Warn("author cache encode failed", zap.String("id", a.ID), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, cache.EntryKey(cache.Authors, a.ID), b, cache.EntryTTL); err != nil {
		r.log.Warn("author cache write failed", zap.String("id", a.ID), zap.Error(err))
	}
}

// EvictOne removes the per-id entry, forcing the next read to repopulate
// from the store.
func (r *CachedRepo) EvictOne(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, cache.EntryKey(cache.Authors, id)); err != nil {
		r.log.Warn("author cache evict failed", zap.String("id", id), zap.Error(err))
	}
}

// RefreshListing re-sets the listing key with a fresh TTL after a local
// mutation. When a cached copy exists the patch is applied to it; otherwise
// the listing is rebuilt from the store, which already reflects the
// mutation. The key is never plainly deleted, so there is no window where
// the next read bypasses the cache.
func (r *CachedRepo) RefreshListing(ctx context.Context, patch func([]Author) []Author) {
	key := cache.ListingKey(cache.Authors)

	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("author listing cache read failed", zap.Error(err))
	} else if hit {
		if authors, err := cache.Decode[[]Author](b); err == nil {
			r.setListing(ctx, patch(authors))
			return
		}
		r.log.Warn("author listing cache payload corrupt, rebuilding")
	}

	authors, err := r.store.FindAll(ctx)
	if err != nil {
		r.log.Warn("author listing rebuild failed", zap.Error(err))
		return
	}
	if authors == nil {
		authors = []Author{}
	}
	r.setListing(ctx, authors)
}

func (r *CachedRepo) setListing(ctx context.Context, authors []Author) {
	b, err := cache.Encode(authors)
	if err != nil {
		r.log.Warn("author listing encode failed", zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, cache.ListingKey(cache.Authors), b, cache.ListingTTL); err != nil {
		r.log.Warn("author listing cache write failed", zap.Error(err))
	}
}
