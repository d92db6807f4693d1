package httpapi

import (
	"encoding/json"
	"net/http"

	"suited/internal/coordinator"
	"suited/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusForError maps coordinator errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case coordinator.IsNotFound(err):
		return http.StatusNotFound
	case coordinator.IsValidation(err):
		return http.StatusBadRequest
	case coordinator.IsAlreadyActive(err), coordinator.IsPinned(err):
		return http.StatusConflict
	case coordinator.IsResourceExhausted(err):
		return http.StatusInsufficientStorage
	case coordinator.IsLoadFailure(err):
		return http.StatusServiceUnavailable
	default:
		if he, ok := err.(HTTPError); ok {
			return he.StatusCode()
		}
		return http.StatusInternalServerError
	}
}

// writeError maps err through statusForError and writes the payload.
func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusForError(err), err.Error())
}
