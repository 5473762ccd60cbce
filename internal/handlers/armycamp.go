package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ArmyCampHandler struct {
	service *services.ArmyCampService
	logr    *zap.Logger
}

func NewArmyCampHandler(svc *services.ArmyCampService, logr *zap.Logger) *ArmyCampHandler {
	return &ArmyCampHandler{service: svc, logr: logr}
}

// GET /districts/{districtId}/army-camps
func (h *ArmyCampHandler) List(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	camps, err := h.service.ListByDistrict(r.Context(), districtID)
	if err != nil {
		h.logr.Error("failed to list army camps", zap.Error(err), zap.String("district", districtID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": camps, "count": len(camps)})
}

// POST /districts/{districtId}/army-camps
func (h *ArmyCampHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.CreateArmyCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	req.DistrictID = chi.URLParam(r, "districtId")

	camp, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camp)
}

// PUT /army-camps/{id}
func (h *ArmyCampHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.UpdateArmyCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	camp, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

// DELETE /army-camps/{id}?district=...
func (h *ArmyCampHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
