package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PollingHandler struct {
	service *services.PollingService
	logr    *zap.Logger
}

func NewPollingHandler(svc *services.PollingService, logr *zap.Logger) *PollingHandler {
	return &PollingHandler{service: svc, logr: logr}
}

// GET /districts/{districtId}/upazilas/{upazilaId}/polling
func (h *PollingHandler) List(w http.ResponseWriter, r *http.Request) {
	upazilaID := chi.URLParam(r, "upazilaId")
	centers, err := h.service.ListByUpazila(r.Context(), upazilaID)
	if err != nil {
		h.logr.Error("failed to list polling centers", zap.Error(err), zap.String("upazila", upazilaID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": centers, "count": len(centers)})
}

// POST /districts/{districtId}/upazilas/{upazilaId}/polling
func (h *PollingHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.CreatePollingCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	req.DistrictID = chi.URLParam(r, "districtId")
	req.UpazilaID = chi.URLParam(r, "upazilaId")

	center, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, center)
}

// PUT /polling/{id}
func (h *PollingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.UpdatePollingCenterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	center, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, center)
}

// DELETE /polling/{id}?district=...&upazila=...
func (h *PollingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"), q.Get("district"), q.Get("upazila")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
