package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CandidateHandler struct {
	service *services.CandidateService
	logr    *zap.Logger
}

func NewCandidateHandler(svc *services.CandidateService, logr *zap.Logger) *CandidateHandler {
	return &CandidateHandler{service: svc, logr: logr}
}

// GET /districts/{districtId}/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	districtID := chi.URLParam(r, "districtId")
	candidates, err := h.service.ListByDistrict(r.Context(), districtID)
	if err != nil {
		h.logr.Error("failed to list candidates", zap.Error(err), zap.String("district", districtID))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": candidates, "count": len(candidates)})
}

// POST /districts/{districtId}/candidates
func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	req.DistrictID = chi.URLParam(r, "districtId")

	candidate, err := h.service.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

// PUT /candidates/{id}
func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req services.UpdateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	candidate, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// DELETE /candidates/{id}?district=...
func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
