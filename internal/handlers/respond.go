// Package handlers wires HTTP requests to the content service. The blog
// is API-shaped: handlers accept form submissions and return structured
// JSON (posts, tag lists, pagination windows) for the rendering layer —
// HTML production is not this package's business.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/service"
	"inkwell/internal/store"
)

// statusResponse is the body for mutation endpoints: {"ok": ..., "message": ...}.
type statusResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondStatus writes the {"ok": ...} shape used by delete and save
// endpoints.
func respondStatus(w http.ResponseWriter, status int, ok bool, message string) {
	respondJSON(w, status, statusResponse{OK: ok, Message: message})
}

// respondError translates the service error taxonomy into HTTP statuses.
// Anything outside the taxonomy is a storage-level failure: logged, and
// reported as a bare 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondStatus(w, http.StatusNotFound, false, "Not found.")
	case errors.Is(err, service.ErrValidation):
		respondStatus(w, http.StatusUnprocessableEntity, false, "Required fields are empty.")
	case errors.Is(err, service.ErrSelfDelete):
		respondStatus(w, http.StatusForbidden, false,
			"You can't delete yourself via this table. Use the delete option in your profile instead.")
	case errors.Is(err, service.ErrSettingsMissing):
		respondStatus(w, http.StatusServiceUnavailable, false, "Site is not initialized. Please try again.")
	case store.IsUniqueViolation(err):
		respondStatus(w, http.StatusConflict, false, "Already exists.")
	default:
		slog.Error("request failed", "error", err)
		respondStatus(w, http.StatusInternalServerError, false, "Internal error.")
	}
}
