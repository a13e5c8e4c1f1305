// Package catalog coordinates book mutations with the denormalized author
// fields and keeps the cache coherent around both.
//
// The two collections are not written transactionally. The ordering contract
// is: primary-store writes commit first, the author-side counter update
// rides on a single-document atomic op, and cache maintenance happens last
// and is best-effort. A cache failure after a committed write is logged and
// never surfaced to the caller.
package catalog

import (
	"context"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/validate"
)

// Coordinator owns every operation that touches both entities at once.
type Coordinator struct {
	authors     author.Repository
	books       book.Repository
	authorStore author.Store
	bookStore   book.Store
	log         *zap.Logger
}

func NewCoordinator(authors author.Repository, books book.Repository, authorStore author.Store, bookStore book.Store, log *zap.Logger) *Coordinator {
	return &Coordinator{
		authors:     authors,
		books:       books,
		authorStore: authorStore,
		bookStore:   bookStore,
		log:         log,
	}
}

// AddBook creates a book under an existing author and bumps the author's
// denormalized fields. Nothing is written until every check has passed, so a
// rejected input leaves no partial record behind.
func (c *Coordinator) AddBook(ctx context.Context, in AddBookInput) (book.Book, error) {
	in = in.normalized()
	if fields := validate.Struct(in); fields != nil {
		return book.Book{}, apperr.ValidationWithDetails("invalid book input", fields)
	}
	if !isFinite(in.Price) {
		return book.Book{}, apperr.Validation("price must be a finite number")
	}

	a, found, err := c.authorStore.FindByID(ctx, in.AuthorID)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "author lookup failed")
	}
	if !found {
		return book.Book{}, apperr.NotFoundf("author %s not found", in.AuthorID)
	}

	if err := checkPublicationAfterBirth(in.PublicationDate, a); err != nil {
		return book.Book{}, err
	}

	b := book.Book{
		ID:              uuid.NewString(),
		Title:           in.Title,
		Genres:          in.Genres,
		PublicationDate: in.PublicationDate,
		Publisher:       in.Publisher,
		Summary:         in.Summary,
		ISBN:            in.ISBN,
		Language:        in.Language,
		PageCount:       in.PageCount,
		Price:           in.Price,
		Format:          in.Format,
		AuthorID:        in.AuthorID,
	}

	if err := c.bookStore.Insert(ctx, b); err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "could not add book")
	}

	updated, found, err := c.authorStore.AppendBook(ctx, in.AuthorID, b.ID)
	if err != nil || !found {
		// The book row is committed; the counter is now stale until the
		// author record is next written. Surface it in the logs only.
		c.log.Error("author denormalization update failed after book insert",
			zap.String("book_id", b.ID), zap.String("author_id", in.AuthorID), zap.Error(err))
	} else {
		c.authors.UpsertOne(ctx, updated)
		c.authors.RefreshListing(ctx, replaceAuthor(updated))
	}

	c.books.UpsertOne(ctx, b)
	c.books.RefreshListing(ctx, func(books []book.Book) []book.Book {
		return append(books, b)
	})

	return b, nil
}

// EditBook applies a partial update. When authorId changes, the book is
// re-parented: detached from the old author, attached to the new one, both
// with set semantics so a repeated edit cannot double-count.
func (c *Coordinator) EditBook(ctx context.Context, id string, in EditBookInput) (book.Book, error) {
	id = strings.TrimSpace(id)
	if uuid.Validate(id) != nil {
		return book.Book{}, apperr.Validation("invalid book id")
	}
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	if uuid.Validate(in.AuthorID) != nil {
		return book.Book{}, apperr.Validation("invalid author id")
	}

	cur, found, err := c.bookStore.FindByID(ctx, id)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "book lookup failed")
	}
	if !found {
		return book.Book{}, apperr.NotFoundf("book %s not found", id)
	}

	next, err := applyEdit(cur, in)
	if err != nil {
		return book.Book{}, err
	}

	newAuthor, found, err := c.authorStore.FindByID(ctx, in.AuthorID)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "author lookup failed")
	}
	if !found {
		return book.Book{}, apperr.NotFoundf("author %s not found", in.AuthorID)
	}
	if err := checkPublicationAfterBirth(next.PublicationDate, newAuthor); err != nil {
		return book.Book{}, err
	}

	oldAuthorID := cur.AuthorID
	reparented := oldAuthorID != next.AuthorID

	if reparented {
		if err := c.authorStore.DetachBook(ctx, oldAuthorID, id); err != nil {
			return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "could not detach book from author")
		}
		if err := c.authorStore.AttachBook(ctx, next.AuthorID, id); err != nil {
			return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "could not attach book to author")
		}
	}

	modified, err := c.bookStore.Replace(ctx, next)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "could not edit book")
	}
	if modified == 0 {
		return book.Book{}, apperr.Internal("book update modified no records")
	}

	if reparented {
		c.authors.EvictOne(ctx, oldAuthorID)
		c.authors.EvictOne(ctx, next.AuthorID)
		c.refreshAuthor(ctx, oldAuthorID)
		c.refreshAuthor(ctx, next.AuthorID)
	}

	c.books.UpsertOne(ctx, next)
	c.books.RefreshListing(ctx, replaceBook(next))

	return next, nil
}

// RemoveBook deletes a book and pulls its id off the author's denormalized
// fields. The listing caches are patched in place rather than dropped.
func (c *Coordinator) RemoveBook(ctx context.Context, id string) (book.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return book.Book{}, apperr.Validation("book id cannot be empty or contain only spaces")
	}

	b, found, err := c.bookStore.FindByID(ctx, id)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "book lookup failed")
	}
	if !found {
		return book.Book{}, apperr.NotFoundf("book %s not found", id)
	}

	deleted, err := c.bookStore.DeleteByID(ctx, id)
	if err != nil {
		return book.Book{}, apperr.Wrap(err, apperr.CodeInternal, "could not remove book")
	}
	if deleted == 0 {
		return book.Book{}, apperr.Internal("book delete removed no records")
	}

	if err := c.authorStore.DetachBook(ctx, b.AuthorID, id); err != nil {
		c.log.Error("author denormalization update failed after book delete",
			zap.String("book_id", id), zap.String("author_id", b.AuthorID), zap.Error(err))
	}

	c.books.EvictOne(ctx, id)
	c.books.RefreshListing(ctx, removeBook(id))
	c.authors.EvictOne(ctx, b.AuthorID)
	c.refreshAuthor(ctx, b.AuthorID)

	return b, nil
}

// refreshAuthor re-reads one author from the primary store and folds the
// fresh document back into the cache.
func (c *Coordinator) refreshAuthor(ctx context.Context, id string) {
	a, found, err := c.authorStore.FindByID(ctx, id)
	if err != nil || !found {
		c.log.Warn("author cache refresh skipped", zap.String("author_id", id), zap.Error(err))
		return
	}
	c.authors.UpsertOne(ctx, a)
	c.authors.RefreshListing(ctx, replaceAuthor(a))
}

// RemoveAuthor deletes an author and cascades to every book whose authorId
// points at it, returning both. Books go first so a crash between the two
// deletes cannot leave books referencing a missing author.
func (c *Coordinator) RemoveAuthor(ctx context.Context, id string) (author.Author, []book.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return author.Author{}, nil, apperr.Validation("author id cannot be empty or contain only spaces")
	}

	a, found, err := c.authorStore.FindByID(ctx, id)
	if err != nil {
		return author.Author{}, nil, apperr.Wrap(err, apperr.CodeInternal, "author lookup failed")
	}
	if !found {
		return author.Author{}, nil, apperr.NotFoundf("author %s not found", id)
	}

	orphans, err := c.bookStore.FindByAuthor(ctx, id, 0)
	if err != nil {
		return author.Author{}, nil, apperr.Wrap(err, apperr.CodeInternal, "author books lookup failed")
	}
	if orphans == nil {
		orphans = []book.Book{}
	}

	if _, err := c.bookStore.DeleteByAuthor(ctx, id); err != nil {
		return author.Author{}, nil, apperr.Wrap(err, apperr.CodeInternal, "could not remove author's books")
	}

	deleted, err := c.authorStore.DeleteByID(ctx, id)
	if err != nil {
		return author.Author{}, nil, apperr.Wrap(err, apperr.CodeInternal, "could not remove author")
	}
	if deleted == 0 {
		return author.Author{}, nil, apperr.Internal("author delete removed no records")
	}

	c.authors.EvictOne(ctx, id)
	for _, b := range orphans {
		c.books.EvictOne(ctx, b.ID)
	}
	c.authors.RefreshListing(ctx, func(authors []author.Author) []author.Author {
		out := authors[:0]
		for _, a := range authors {
			if a.ID != id {
				out = append(out, a)
			}
		}
		return out
	})
	c.books.RefreshListing(ctx, func(books []book.Book) []book.Book {
		out := books[:0]
		for _, b := range books {
			if b.AuthorID != id {
				out = append(out, b)
			}
		}
		return out
	})

	return a, orphans, nil
}

func applyEdit(cur book.Book, in EditBookInput) (book.Book, error) {
	next := cur
	next.AuthorID = in.AuthorID

	if in.Title != nil {
		v := strings.TrimSpace(*in.Title)
		if v == "" {
			return book.Book{}, apperr.Validation("title cannot be empty or contain only spaces")
		}
		next.Title = v
	}
	if in.Genres != nil {
		gs := trimAll(*in.Genres)
		if len(gs) == 0 {
			return book.Book{}, apperr.Validation("genres must have at least one entry")
		}
		for _, g := range gs {
			if g == "" {
				return book.Book{}, apperr.Validation("genres cannot contain blank entries")
			}
		}
		next.Genres = gs
	}
	if in.PublicationDate != nil {
		v := strings.TrimSpace(*in.PublicationDate)
		if !validate.PublicationDate(v) {
			return book.Book{}, apperr.Validation("publicationDate is not an accepted date format")
		}
		next.PublicationDate = v
	}
	if in.Publisher != nil {
		v := strings.TrimSpace(*in.Publisher)
		if v == "" {
			return book.Book{}, apperr.Validation("publisher cannot be empty or contain only spaces")
		}
		next.Publisher = v
	}
	if in.Summary != nil {
		v := strings.TrimSpace(*in.Summary)
		if v == "" {
			return book.Book{}, apperr.Validation("summary cannot be empty or contain only spaces")
		}
		next.Summary = v
	}
	if in.ISBN != nil {
		v := strings.TrimSpace(*in.ISBN)
		if !validate.ISBN13(v) {
			return book.Book{}, apperr.Validation("isbn must be a valid ISBN-13")
		}
		next.ISBN = v
	}
	if in.Language != nil {
		v := strings.TrimSpace(*in.Language)
		if v == "" {
			return book.Book{}, apperr.Validation("language cannot be empty or contain only spaces")
		}
		next.Language = v
	}
	if in.PageCount != nil {
		if *in.PageCount <= 0 {
			return book.Book{}, apperr.Validation("pageCount must be greater than 0")
		}
		next.PageCount = *in.PageCount
	}
	if in.Price != nil {
		if !isFinite(*in.Price) || *in.Price <= 0 {
			return book.Book{}, apperr.Validation("price must be a positive finite number")
		}
		next.Price = *in.Price
	}
	if in.Format != nil {
		fs := trimAll(*in.Format)
		if len(fs) == 0 {
			return book.Book{}, apperr.Validation("format must have at least one entry")
		}
		for _, f := range fs {
			if f == "" {
				return book.Book{}, apperr.Validation("format cannot contain blank entries")
			}
		}
		next.Format = fs
	}

	return next, nil
}

// checkPublicationAfterBirth rejects a publication date strictly before the
// author's date of birth. An unparseable stored birth date is an internal
// inconsistency, not the caller's fault.
func checkPublicationAfterBirth(pubDate string, a author.Author) error {
	pub, ok := validate.ParsePublicationDate(pubDate)
	if !ok {
		return apperr.Validation("publicationDate is not an accepted date format")
	}
	dob, ok := validate.ParseBirthDate(a.DateOfBirth)
	if !ok {
		return apperr.Internalf("author %s has an unparseable date of birth", a.ID)
	}
	if pub.Before(dob) {
		return apperr.Validation("publicationDate cannot be before the author's date of birth")
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func replaceAuthor(a author.Author) func([]author.Author) []author.Author {
	return func(authors []author.Author) []author.Author {
		for i := range authors {
			if authors[i].ID == a.ID {
				authors[i] = a
			}
		}
		return authors
	}
}

func replaceBook(b book.Book) func([]book.Book) []book.Book {
	return func(books []book.Book) []book.Book {
		for i := range books {
			if books[i].ID == b.ID {
				books[i] = b
			}
		}
		return books
	}
}

func removeBook(id string) func([]book.Book) []book.Book {
	return func(books []book.Book) []book.Book {
		out := books[:0]
		for _, b := range books {
			if b.ID != id {
				out = append(out, b)
			}
		}
		return out
	}
}
