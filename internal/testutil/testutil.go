// Package testutil holds shared fixtures and request helpers for handler
// tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
)

// SampleAuthor is a valid author record for testing.
var SampleAuthor = author.Author{
	ID:            "0c2a04ad-1a4e-40e2-8c95-3a5e5fbc1f83",
	FirstName:     "Toni",
	LastName:      "Morrison",
	DateOfBirth:   "1931-02-18",
	HometownCity:  "Lorain",
	HometownState: "OH",
	NumOfBooks:    1,
	Books:         []string{"7bd3f730-98f4-4df7-9e0b-4a3a0e8210ab"},
}

// SampleBook is a valid book record belonging to SampleAuthor.
var SampleBook = book.Book{
	ID:              "7bd3f730-98f4-4df7-9e0b-4a3a0e8210ab",
	Title:           "Beloved",
	Genres:          []string{"Fiction"},
	PublicationDate: "09/02/1987",
	Publisher:       "Alfred A. Knopf",
	Summary:         "A novel of memory and haunting.",
	ISBN:            "978-1-4000-3341-6",
	Language:        "English",
	PageCount:       324,
	Price:           16.00,
	Format:          []string{"hardcover", "paperback"},
	AuthorID:        "0c2a04ad-1a4e-40e2-8c95-3a5e5fbc1f83",
}

// JSONBody encodes v for use as a request body.
func JSONBody(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// DecodeBody unmarshals a recorded response body into out.
func DecodeBody(w *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(w.Body.Bytes(), out)
}
