package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"traveldesk-service/internal/domain/entity"
)

// successBody is the envelope for successful responses.
type successBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// errorBody is the envelope for failed responses.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successBody{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Success: false, Error: msg})
}

// respondDomainError maps the domain error taxonomy onto HTTP statuses:
// invalid request to 400, not found to 404, anything else to 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
