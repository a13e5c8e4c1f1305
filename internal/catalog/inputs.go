package catalog

import (
	"strings"
)

// AddBookInput is the payload for creating a book.
type AddBookInput struct {
	Title           string   `json:"title" validate:"required,notblank"`
	Genres          []string `json:"genres" validate:"required,min=1,dive,notblank"`
	PublicationDate string   `json:"publicationDate" validate:"required,publication_date"`
	Publisher       string   `json:"publisher" validate:"required,notblank"`
	Summary         string   `json:"summary" validate:"required,notblank"`
	ISBN            string   `json:"isbn" validate:"required,isbn13"`
	Language        string   `json:"language" validate:"required,notblank"`
	PageCount       int      `json:"pageCount" validate:"required,gt=0"`
	Price           float64  `json:"price" validate:"required,gt=0"`
	Format          []string `json:"format" validate:"required,min=1,dive,notblank"`
	AuthorID        string   `json:"authorId" validate:"required,uuid4"`
}

func (in AddBookInput) normalized() AddBookInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Genres = trimAll(in.Genres)
	in.PublicationDate = strings.TrimSpace(in.PublicationDate)
	in.Publisher = strings.TrimSpace(in.Publisher)
	in.Summary = strings.TrimSpace(in.Summary)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Language = strings.TrimSpace(in.Language)
	in.Format = trimAll(in.Format)
	in.AuthorID = strings.TrimSpace(in.AuthorID)
	return in
}

// EditBookInput is a partial book update. AuthorID is always required; a
// value different from the book's current author re-parents it.
type EditBookInput struct {
	AuthorID        string    `json:"authorId"`
	Title           *string   `json:"title"`
	Genres          *[]string `json:"genres"`
	PublicationDate *string   `json:"publicationDate"`
	Publisher       *string   `json:"publisher"`
	Summary         *string   `json:"summary"`
	ISBN            *string   `json:"isbn"`
	Language        *string   `json:"language"`
	PageCount       *int      `json:"pageCount"`
	Price           *float64  `json:"price"`
	Format          *[]string `json:"format"`
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
