// Package memory holds map-backed implementations of the entity stores. They
// back the seed dry run and the repository and coordinator tests, with the
// same contracts as the document-store implementations.
package memory

import (
	"context"
	"sync"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
)

// MemAuthors is an in-memory author.Store.
type MemAuthors struct {
	mu    sync.RWMutex
	docs  map[string]author.Author
	order []string
}

var _ author.Store = (*MemAuthors)(nil)

func NewMemAuthors() *MemAuthors {
	return &MemAuthors{docs: make(map[string]author.Author)}
}

func (s *MemAuthors) FindAll(_ context.Context) ([]author.Author, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]author.Author, 0, len(s.order))
	for _, id := range s.order {
		if a, ok := s.docs[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemAuthors) FindByID(_ context.Context, id string) (author.Author, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.docs[id]
	return a, ok, nil
}

func (s *MemAuthors) Insert(_ context.Context, a author.Author) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[a.ID]; !exists {
		s.order = append(s.order, a.ID)
	}
	s.docs[a.ID] = a
	return nil
}

func (s *MemAuthors) UpdateFields(_ context.Context, id string, fields map[string]any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.docs[id]
	if !ok {
		return 0, nil
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			a.FirstName = v.(string)
		case "last_name":
			a.LastName = v.(string)
		case "date_of_birth":
			a.DateOfBirth = v.(string)
		case "hometownCity":
			a.HometownCity = v.(string)
		case "hometownState":
			a.HometownState = v.(string)
		}
	}
	s.docs[id] = a
	return 1, nil
}

func (s *MemAuthors) DeleteByID(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (s *MemAuthors) AppendBook(_ context.Context, authorID, bookID string) (author.Author, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.docs[authorID]
	if !ok {
		return author.Author{}, false, nil
	}
	a.Books = append(append([]string{}, a.Books...), bookID)
	a.NumOfBooks++
	s.docs[authorID] = a
	return a, true, nil
}

func (s *MemAuthors) AttachBook(_ context.Context, authorID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.docs[authorID]
	if !ok {
		return nil
	}
	for _, id := range a.Books {
		if id == bookID {
			return nil
		}
	}
	a.Books = append(append([]string{}, a.Books...), bookID)
	a.NumOfBooks++
	s.docs[authorID] = a
	return nil
}

func (s *MemAuthors) DetachBook(_ context.Context, authorID, bookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.docs[authorID]
	if !ok {
		return nil
	}
	kept := make([]string, 0, len(a.Books))
	for _, id := range a.Books {
		if id != bookID {
			kept = append(kept, id)
		}
	}
	a.Books = kept
	a.NumOfBooks--
	s.docs[authorID] = a
	return nil
}

// MemBooks is an in-memory book.Store.
type MemBooks struct {
	mu    sync.RWMutex
	docs  map[string]book.Book
	order []string
}

var _ book.Store = (*MemBooks)(nil)

func NewMemBooks() *MemBooks {
	return &MemBooks{docs: make(map[string]book.Book)}
}

func (s *MemBooks) FindAll(_ context.Context) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]book.Book, 0, len(s.order))
	for _, id := range s.order {
		if b, ok := s.docs[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *MemBooks) FindByID(_ context.Context, id string) (book.Book, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.docs[id]
	return b, ok, nil
}

func (s *MemBooks) FindByAuthor(_ context.Context, authorID string, limit int) ([]book.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []book.Book{}
	for _, id := range s.order {
		b, ok := s.docs[id]
		if !ok || b.AuthorID != authorID {
			continue
		}
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *MemBooks) Insert(_ context.Context, b book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[b.ID]; !exists {
		s.order = append(s.order, b.ID)
	}
	s.docs[b.ID] = b
	return nil
}

func (s *MemBooks) Replace(_ context.Context, b book.Book) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[b.ID]; !ok {
		return 0, nil
	}
	s.docs[b.ID] = b
	return 1, nil
}

func (s *MemBooks) DeleteByID(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return 0, nil
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (s *MemBooks) DeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	kept := s.order[:0]
	for _, id := range s.order {
		b, ok := s.docs[id]
		if ok && b.AuthorID == authorID {
			delete(s.docs, id)
			deleted++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return deleted, nil
}
