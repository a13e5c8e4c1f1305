package book

import (
	"context"
)

// Store is the primary-store collaborator for book documents.
type Store interface {
	FindAll(ctx context.Context) ([]Book, error)
	FindByID(ctx context.Context, id string) (Book, bool, error)
	// FindByAuthor returns the books whose authorId matches; limit <= 0
	// means no limit.
	FindByAuthor(ctx context.Context, authorID string, limit int) ([]Book, error)
	Insert(ctx context.Context, b Book) error
	Replace(ctx context.Context, b Book) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
}

// Repository is the cache-backed data access used by the service, the
// coordinator, and the derived views.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (Book, error)
	UpsertOne(ctx context.Context, b Book)
	EvictOne(ctx context.Context, id string)
	RefreshListing(ctx context.Context, patch func([]Book) []Book)
}
