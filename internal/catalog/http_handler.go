package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"
)

// HTTPHandler exposes the cross-entity mutations and the derived views.
type HTTPHandler struct {
	coord *Coordinator
	views *Views
}

func NewHTTPHandler(coord *Coordinator, views *Views) *HTTPHandler {
	return &HTTPHandler{coord: coord, views: views}
}

// AddBook handles POST /books
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var in AddBookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	b, err := h.coord.AddBook(r.Context(), in)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, b)
}

// EditBook handles PUT /books/{id}
func (h *HTTPHandler) EditBook(w http.ResponseWriter, r *http.Request) {
	var in EditBookInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	b, err := h.coord.EditBook(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// RemoveBook handles DELETE /books/{id}
func (h *HTTPHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	b, err := h.coord.RemoveBook(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}

// RemoveAuthor handles DELETE /authors/{id}
func (h *HTTPHandler) RemoveAuthor(w http.ResponseWriter, r *http.Request) {
	a, removed, err := h.coord.RemoveAuthor(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, a, map[string]any{"removedBooks": len(removed)})
}

// BooksByGenre handles GET /search/books/genre/{genre}
func (h *HTTPHandler) BooksByGenre(w http.ResponseWriter, r *http.Request) {
	books, err := h.views.BooksByGenre(r.Context(), r.PathValue("genre"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

// BooksByPriceRange handles GET /search/books/price?min=&max=
func (h *HTTPHandler) BooksByPriceRange(w http.ResponseWriter, r *http.Request) {
	min, errMin := strconv.ParseFloat(r.URL.Query().Get("min"), 64)
	max, errMax := strconv.ParseFloat(r.URL.Query().Get("max"), 64)
	if errMin != nil || errMax != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "min and max must be numbers", nil)
		return
	}

	books, err := h.views.BooksByPriceRange(r.Context(), min, max)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

// SearchAuthors handles GET /search/authors?q=
func (h *HTTPHandler) SearchAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.views.SearchAuthorsByName(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, authors, map[string]any{"total": len(authors)})
}

// AuthorBooks handles GET /authors/{id}/books?limit=
func (h *HTTPHandler) AuthorBooks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "limit must be a positive number", nil)
			return
		}
		limit = n
	}

	books, err := h.views.AuthorBooks(r.Context(), r.PathValue("id"), limit)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}
