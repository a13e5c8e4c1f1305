package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/cache"
)

// Views serves the derived read models: genre, price-range, and author-name
// filters over the listings. Each view checks its own cache key first and
// recomputes from the entity listings on a miss.
type Views struct {
	authors   author.Repository
	books     book.Repository
	bookStore book.Store
	cache     cache.Store
	log       *zap.Logger
}

func NewViews(authors author.Repository, books book.Repository, bookStore book.Store, c cache.Store, log *zap.Logger) *Views {
	return &Views{authors: authors, books: books, bookStore: bookStore, cache: c, log: log}
}

// BooksByGenre returns the books carrying the given genre, matched
// case-insensitively.
func (v *Views) BooksByGenre(ctx context.Context, genre string) ([]book.Book, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, apperr.Validation("genre cannot be empty or contain only spaces")
	}

	key := cache.GenreKey(genre)
	if cached, ok := getView[[]book.Book](ctx, v, key); ok {
		return cached, nil
	}

	all, err := v.books.List(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(genre)
	out := []book.Book{}
	for _, b := range all {
		for _, g := range b.Genres {
			if strings.ToLower(g) == want {
				out = append(out, b)
				break
			}
		}
	}

	v.setView(ctx, key, out)
	return out, nil
}

// BooksByPriceRange returns the books priced within [min, max].
func (v *Views) BooksByPriceRange(ctx context.Context, min, max float64) ([]book.Book, error) {
	if !isFinite(min) || !isFinite(max) || min < 0 || max <= min {
		return nil, apperr.Validation("invalid price range")
	}

	key := cache.PriceKey(min, max)
	if cached, ok := getView[[]book.Book](ctx, v, key); ok {
		return cached, nil
	}

	all, err := v.books.List(ctx)
	if err != nil {
		return nil, err
	}

	out := []book.Book{}
	for _, b := range all {
		if b.Price >= min && b.Price <= max {
			out = append(out, b)
		}
	}

	v.setView(ctx, key, out)
	return out, nil
}

// SearchAuthorsByName returns the authors whose first or last name contains
// the term, case-insensitively.
func (v *Views) SearchAuthorsByName(ctx context.Context, term string) ([]author.Author, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("search term cannot be empty or contain only spaces")
	}

	key := cache.SearchKey(term)
	if cached, ok := getView[[]author.Author](ctx, v, key); ok {
		return cached, nil
	}

	all, err := v.authors.List(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(term)
	out := []author.Author{}
	for _, a := range all {
		name := strings.ToLower(a.FirstName + " " + a.LastName)
		if strings.Contains(name, want) {
			out = append(out, a)
		}
	}

	v.setView(ctx, key, out)
	return out, nil
}

// AuthorBooks returns the books belonging to one author, capped at limit
// when limit > 0.
func (v *Views) AuthorBooks(ctx context.Context, authorID string, limit int) ([]book.Book, error) {
	if limit < 0 {
		return nil, apperr.Validation("limit must be a positive number")
	}

	// Resolves through the author repository so a missing author surfaces
	// as NOT_FOUND rather than an empty list.
	a, err := v.authors.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	books, err := v.bookStore.FindByAuthor(ctx, a.ID, limit)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeInternal, "author books lookup failed")
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}

func getView[T any](ctx context.Context, v *Views, key string) (T, bool) {
	var zero T
	b, hit, err := v.cache.Get(ctx, key)
	if err != nil {
		v.log.Warn("view cache read failed", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	if !hit {
		return zero, false
	}
	val, err := cache.Decode[T](b)
	if err != nil {
		v.log.Warn("view cache payload corrupt", zap.String("key", key), zap.Error(err))
		return zero, false
	}
	return val, true
}

func (v *Views) setView(ctx context.Context, key string, val any) {
	b, err := cache.Encode(val)
	if err != nil {
		v.log.Warn("view cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := v.cache.Set(ctx, key, b, cache.ListingTTL); err != nil {
		v.log.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
	}
}
