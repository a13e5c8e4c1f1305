package book

import (
	"context"
)

// Service provides book read operations. Book mutations all touch the
// author's denormalized fields and live in the catalog coordinator.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// GetByID returns a book by its id.
func (s *Service) GetByID(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}
