package book

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/cache"
)

// CachedRepo is the book entity repository. Same shape as the author side:
// read-through listing and per-id keys, refresh-not-delete on writes.
type CachedRepo struct {
	store Store
	cache cache.Store
	log   *zap.Logger
}

var _ Repository = (*CachedRepo)(nil)

func NewCachedRepo(store Store, c cache.Store, log *zap.Logger) *CachedRepo {
	return &CachedRepo{store: store, cache: c, log: log}
}

func (r *CachedRepo) List(ctx context.Context) ([]Book, error) {
	key := cache.ListingKey(cache.Books)

	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("book listing cache read failed", zap.Error(err))
	} else if hit {
		books, err := cache.Decode[[]Book](b)
		if err == nil {
			return books, nil
		}
		r.log.Warn("book listing cache payload corrupt", zap.Error(err))
	}

	books, err := r.store.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "book listing query failed")
	}
	if books == nil {
		books = []Book{}
	}

	r.setListing(ctx, books)
	return books, nil
}

func (r *CachedRepo) GetByID(ctx context.Context, id string) (Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Book{}, apperr.Validation("book id cannot be empty or contain only spaces")
	}

	key := cache.EntryKey(cache.Books, id)
	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("book cache read failed", zap.String("id", id), zap.Error(err))
	} else if hit {
		bk, err := cache.Decode[Book](b)
		if err == nil {
			return bk, nil
		}
		r.log.Warn("book cache payload corrupt", zap.String("id", id), zap.Error(err))
	}

	bk, found, err := r.store.FindByID(ctx, id)
	if err != nil {
		return Book{}, apperr.Wrap(err, apperr.CodeInternal, "book lookup failed")
	}
	if !found {
		return Book{}, apperr.NotFoundf("book %s not found", id)
	}

	r.UpsertOne(ctx, bk)
	return bk, nil
}

func (r *CachedRepo) UpsertOne(ctx context.Context, bk Book) {
	b, err := cache.Encode(bk)
	if err != nil {
		r.log.Warn("book cache encode failed", zap.String("id", bk.ID), zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, cache.EntryKey(cache.Books, bk.ID), b, cache.EntryTTL); err != nil {
		r.log.Warn("book cache write failed", zap.String("id", bk.ID), zap.Error(err))
	}
}

func (r *CachedRepo) EvictOne(ctx context.Context, id string) {
	if err := r.cache.Delete(ctx, cache.EntryKey(cache.Books, id)); err != nil {
		r.log.Warn("book cache evict failed", zap.String("id", id), zap.Error(err))
	}
}

func (r *CachedRepo) RefreshListing(ctx context.Context, patch func([]Book) []Book) {
	key := cache.ListingKey(cache.Books)

	if b, hit, err := r.cache.Get(ctx, key); err != nil {
		r.log.Warn("book listing cache read failed", zap.Error(err))
	} else if hit {
		if books, err := cache.Decode[[]Book](b); err == nil {
			r.setListing(ctx, patch(books))
			return
		}
		r.log.Warn("book listing cache payload corrupt, rebuilding")
	}

	books, err := r.store.FindAll(ctx)
	if err != nil {
		r.log.Warn("book listing rebuild failed", zap.Error(err))
		return
	}
	if books == nil {
		books = []Book{}
	}
	r.setListing(ctx, books)
}

func (r *CachedRepo) setListing(ctx context.Context, books []Book) {
	b, err := cache.Encode(books)
	if err != nil {
		r.log.Warn("book listing encode failed", zap.Error(err))
		return
	}
	if err := r.cache.Set(ctx, cache.ListingKey(cache.Books), b, cache.ListingTTL); err != nil {
		r.log.Warn("book listing cache write failed", zap.Error(err))
	}
}
