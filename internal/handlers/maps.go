package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MapHandler serves the embedded map per district, per upazila and the
// division-wide landing map. Reads are public; an unset map is a 200
// with a null body rather than a 404, so the frontend can render its
// placeholder without special-casing errors.
type MapHandler struct {
	service *services.MapService
	logr    *zap.Logger
}

func NewMapHandler(svc *services.MapService, logr *zap.Logger) *MapHandler {
	return &MapHandler{service: svc, logr: logr}
}

// GET /districts/{districtId}/map
func (h *MapHandler) GetDistrictMap(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	m, err := h.service.GetDistrictMap(r.Context(), districtID)
	if err != nil {
		h.logr.Error("failed to load district map", zap.Error(err), zap.String("district", districtID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": m})
}

// PUT /districts/{districtId}/map
func (h *MapHandler) UpsertDistrictMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	m, err := h.service.UpsertDistrictMap(r.Context(), id, chi.URLParam(r, "districtId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DELETE /districts/{districtId}/map
func (h *MapHandler) DeleteDistrictMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteDistrictMap(r.Context(), id, chi.URLParam(r, "districtId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /districts/{districtId}/upazilas/{upazilaId}/map
func (h *MapHandler) GetUpazilaMap(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	upazilaID := chi.URLParam(r, "upazilaId")
	m, err := h.service.GetUpazilaMap(r.Context(), districtID, upazilaID)
	if err != nil {
		h.logr.Error("failed to load upazila map", zap.Error(err),
			zap.String("district", districtID), zap.String("upazila", upazilaID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": m})
}

// PUT /districts/{districtId}/upazilas/{upazilaId}/map
func (h *MapHandler) UpsertUpazilaMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	m, err := h.service.UpsertUpazilaMap(r.Context(), id, chi.URLParam(r, "districtId"), chi.URLParam(r, "upazilaId"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DELETE /districts/{districtId}/upazilas/{upazilaId}/map
func (h *MapHandler) DeleteUpazilaMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteUpazilaMap(r.Context(), id, chi.URLParam(r, "districtId"), chi.URLParam(r, "upazilaId")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /map
func (h *MapHandler) GetMainMap(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetMainMap(r.Context())
	if err != nil {
		h.logr.Error("failed to load main map", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": m})
}

// PUT /map — superadmin only, enforced by the service.
func (h *MapHandler) UpsertMainMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	m, err := h.service.UpsertMainMap(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DELETE /map
func (h *MapHandler) DeleteMainMap(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteMainMap(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
