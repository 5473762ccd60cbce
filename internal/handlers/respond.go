package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"election-bknd/internal/authz"
	"election-bknd/internal/middleware"
	"election-bknd/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto HTTP statuses. Unauthorized is always
// the same opaque body, whatever the underlying cause.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// identity pulls the resolved caller off the request. Routes behind JWTAuth
// always have one; a missing identity is treated the same as any other
// unauthorized request.
func identity(w http.ResponseWriter, r *http.Request) (authz.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	return id, ok
}
