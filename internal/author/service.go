package author

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/validate"
)

// Service provides author-local business logic. Mutations that touch the
// book side (cascade removal) live in the catalog coordinator.
type Service struct {
	repo  Repository
	store Store
	log   *zap.Logger
}

func NewService(repo Repository, store Store, log *zap.Logger) *Service {
	return &Service{repo: repo, store: store, log: log}
}

// List returns all authors.
func (s *Service) List(ctx context.Context) ([]Author, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single author.
func (s *Service) GetByID(ctx context.Context, id string) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input, inserts the author, and refreshes the cache.
func (s *Service) Create(ctx context.Context, in CreateInput) (Author, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	in.HometownCity = strings.TrimSpace(in.HometownCity)
	in.HometownState = strings.ToUpper(strings.TrimSpace(in.HometownState))

	if errs := validate.Struct(in); errs != nil {
		return Author{}, apperr.ValidationWithDetails("invalid author input", errs)
	}

	a := Author{
		ID:            uuid.NewString(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		DateOfBirth:   in.DateOfBirth,
		HometownCity:  in.HometownCity,
		HometownState: in.HometownState,
		NumOfBooks:    0,
		Books:         []string{},
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return Author{}, apperr.Wrap(err, apperr.CodeInternal, "could not add author")
	}

	s.repo.UpsertOne(ctx, a)
	s.repo.RefreshListing(ctx, func(authors []Author) []Author {
		return append(authors, a)
	})
	return a, nil
}

// Update applies a partial field update, then mirrors the updated document
// into the cache.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Author, error) {
	id = strings.TrimSpace(id)
	if err := uuid.Validate(id); err != nil {
		return Author{}, apperr.Validation("invalid author id")
	}

	fields, err := updateFields(in)
	if err != nil {
		return Author{}, err
	}
	if len(fields) == 0 {
		return Author{}, apperr.Validation("no fields to update")
	}

	modified, err := s.store.UpdateFields(ctx, id, fields)
	if err != nil {
		return Author{}, apperr.Wrap(err, apperr.CodeInternal, "author update failed")
	}
	if modified == 0 {
		return Author{}, apperr.Internal("author update modified no records")
	}

	updated, found, err := s.store.FindByID(ctx, id)
	if err != nil || !found {
		return Author{}, apperr.Internalf("could not read back updated author %s", id)
	}

	s.repo.UpsertOne(ctx, updated)
	s.repo.RefreshListing(ctx, func(authors []Author) []Author {
		for i := range authors {
			if authors[i].ID == id {
				authors[i] = updated
			}
		}
		return authors
	})
	return updated, nil
}

func updateFields(in UpdateInput) (map[string]any, error) {
	fields := map[string]any{}

	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if errs := validate.Struct(struct {
			FirstName string `validate:"required,notblank,person_name"`
		}{v}); errs != nil {
			return nil, apperr.ValidationWithDetails("invalid first_name", errs)
		}
		fields["first_name"] = v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if errs := validate.Struct(struct {
			LastName string `validate:"required,notblank,person_name"`
		}{v}); errs != nil {
			return nil, apperr.ValidationWithDetails("invalid last_name", errs)
		}
		fields["last_name"] = v
	}
	if in.DateOfBirth != nil {
		v := strings.TrimSpace(*in.DateOfBirth)
		if !validate.BirthDate(v) {
			return nil, apperr.Validation("invalid date_of_birth")
		}
		fields["date_of_birth"] = v
	}
	if in.HometownCity != nil {
		v := strings.TrimSpace(*in.HometownCity)
		if v == "" {
			return nil, apperr.Validation("hometownCity cannot be empty string")
		}
		fields["hometownCity"] = v
	}
	if in.HometownState != nil {
		v := strings.ToUpper(strings.TrimSpace(*in.HometownState))
		if v == "" {
			return nil, apperr.Validation("hometownState cannot be empty string")
		}
		if !validate.USState(v) {
			return nil, apperr.Validation("invalid state abbreviation")
		}
		fields["hometownState"] = v
	}

	return fields, nil
}
