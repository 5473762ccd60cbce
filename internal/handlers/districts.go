package handlers

import (
	"net/http"

	"election-bknd/internal/geo"

	"github.com/go-chi/chi/v5"
)

// DistrictHandler serves the static geography catalog the frontend
// builds its navigation from.
type DistrictHandler struct{}

func NewDistrictHandler() *DistrictHandler {
	return &DistrictHandler{}
}

// GET /districts
func (h *DistrictHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": geo.Districts, "count": len(geo.Districts)})
}

// GET /districts/{districtId}
func (h *DistrictHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := geo.DistrictByID(chi.URLParam(r, "districtId"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, d)
}
