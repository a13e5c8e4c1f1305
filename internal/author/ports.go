package author

import (
	"context"
)

// Store is the primary-store collaborator: a document collection holding
// author records. The denormalization helpers are single-document atomic
// updates; they are the only concurrency control for NumOfBooks/Books.
type Store interface {
	FindAll(ctx context.Context) ([]Author, error)
	FindByID(ctx context.Context, id string) (Author, bool, error)
	Insert(ctx context.Context, a Author) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)

	// AppendBook increments numOfBooks and pushes bookID onto books,
	// returning the updated document.
	AppendBook(ctx context.Context, authorID, bookID string) (Author, bool, error)
	// AttachBook adds bookID with set semantics and increments numOfBooks.
	AttachBook(ctx context.Context, authorID, bookID string) error
	// DetachBook pulls bookID from books and decrements numOfBooks.
	DetachBook(ctx context.Context, authorID, bookID string) error
}

// Repository is the cache-backed data access used by the service, the
// coordinator, and the derived views.
type Repository interface {
	List(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id string) (Author, error)
	UpsertOne(ctx context.Context, a Author)
	EvictOne(ctx context.Context, id string)
	RefreshListing(ctx context.Context, patch func([]Author) []Author)
}
