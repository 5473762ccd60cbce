package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"election-bknd/internal/logger"
	"election-bknd/internal/services"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authSvc *services.AuthService
	logr    *logger.Logger
}

func NewAuthHandler(svc *services.AuthService, logr *logger.Logger) *AuthHandler {
	return &AuthHandler{authSvc: svc, logr: logr}
}

type loginReq struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	DeviceInfo string `json:"device_info"`
}

type tokenResp struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	ExpiresAt    time.Time          `json:"access_expires_at"`
	User         *services.UserInfo `json:"user,omitempty"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	user, err := h.authSvc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	pair, user, err := h.authSvc.Login(r.Context(), req.Email, req.Password, req.DeviceInfo)
	if err != nil {
		h.logr.Warn("login failed", zap.Error(err), zap.String("email", req.Email))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, pair.RefreshExp)
	writeJSON(w, http.StatusOK, tokenResp{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExp,
		User:         user,
	})
}

// POST /auth/refresh  (reads refresh token from cookie OR body)
type refreshReq struct {
	RefreshToken string `json:"refresh_token,omitempty"`
	DeviceInfo   string `json:"device_info,omitempty"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	// prefer cookie if present
	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
	}

	if req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh token required"})
		return
	}

	pair, err := h.authSvc.Refresh(r.Context(), req.RefreshToken, req.DeviceInfo)
	if err != nil {
		h.logr.Warn("refresh failed", zap.Error(err))
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, pair.RefreshExp)
	writeJSON(w, http.StatusOK, tokenResp{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExp,
	})
}

// POST /auth/logout
type logoutReq struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
	}

	if req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "refresh token required"})
		return
	}

	if err := h.authSvc.Logout(r.Context(), req.RefreshToken); err != nil {
		h.logr.Warn("logout failed", zap.Error(err))
		writeError(w, err)
		return
	}

	// clear cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}
