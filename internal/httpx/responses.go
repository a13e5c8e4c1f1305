package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookcatalog/internal/apperr"
	"bookcatalog/internal/validate"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSONSuccess(w http.ResponseWriter, data interface{}, meta interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func JSONSuccessCreated(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func JSONError(w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// JSONDomainError maps a coded domain error onto the envelope. Anything that
// is not an apperr.Error becomes a generic 500.
func JSONDomainError(w http.ResponseWriter, err error) {
	var de *apperr.Error
	if !errors.As(err, &de) {
		JSONError(w, http.StatusInternalServerError, string(apperr.CodeInternal), "Internal server error", nil)
		return
	}

	var details []ErrorDetail
	if fes, ok := de.Details.([]validate.FieldError); ok {
		for _, fe := range fes {
			details = append(details, ErrorDetail{Field: fe.Field, Message: fe.Message})
		}
	}
	JSONError(w, de.HTTPStatus(), string(de.Code), de.Message, details)
}
