package author

import (
	"encoding/json"
	"net/http"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /authors
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, authors, map[string]any{"total": len(authors)})
}

// Get handles GET /authors/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, a, nil)
}

// Create handles POST /authors
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	a, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccessCreated(w, a)
}

// Update handles PATCH /authors/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION", "invalid request body", nil)
		return
	}

	a, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		httpx.JSONDomainError(w, err)
		return
	}
	httpx.JSONSuccess(w, a, nil)
}
