package book

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, books, map[string]any{"total": len(books)})
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, b, nil)
}
