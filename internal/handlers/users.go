package handlers

import (
	"encoding/json"
	"net/http"

	"election-bknd/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserHandler exposes the superadmin user-management surface.
type UserHandler struct {
	userSvc *services.UserService
	logr    *zap.Logger
}

func NewUserHandler(svc *services.UserService, logr *zap.Logger) *UserHandler {
	return &UserHandler{userSvc: svc, logr: logr}
}

// GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	users, err := h.userSvc.ListUsers(r.Context(), id)
	if err != nil {
		h.logr.Error("failed to list users", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

type setRoleReq struct {
	Role *string `json:"role"`
}

// PUT /admin/users/{id}/role — a null role clears the assignment.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req setRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	if err := h.userSvc.SetRole(r.Context(), id, chi.URLParam(r, "id"), req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

// DELETE /admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	if err := h.userSvc.DeleteUser(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
