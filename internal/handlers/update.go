package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"
	"election-bknd/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UpdateHandler struct {
	service *services.UpdateService
	logr    *zap.Logger
}

func NewUpdateHandler(svc *services.UpdateService, logr *zap.Logger) *UpdateHandler {
	return &UpdateHandler{service: svc, logr: logr}
}

// GET /districts/{districtId}/updates?category=critical,normal
func (h *UpdateHandler) List(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	categories := utils.ParseQueryList(r.URL.Query(), "category")

	updates, err := h.service.ListByDistrict(r.Context(), districtID, categories)
	if err != nil {
		h.logr.Error("failed to list updates", zap.Error(err), zap.String("district", districtID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": updates, "count": len(updates)})
}

// GET /districts/{districtId}/updates/critical-count
func (h *UpdateHandler) CriticalCount(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	count, err := h.service.CountCritical(r.Context(), districtID)
	if err != nil {
		h.logr.Error("failed to count critical updates", zap.Error(err), zap.String("district", districtID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// POST /districts/{districtId}/updates
func (h *UpdateHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.CreateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	req.DistrictID = chi.URLParam(r, "districtId")

	update, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, update)
}

// PUT /updates/{id}
func (h *UpdateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.UpdateUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	update, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// DELETE /updates/{id}?district=...
func (h *UpdateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	districtID := r.URL.Query().Get("district")
	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id"), districtID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
