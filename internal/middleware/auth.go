package middleware

import (
	"context"
	"net/http"
	"strings"

	"election-bknd/internal/auth"
	"election-bknd/internal/authz"
	"election-bknd/internal/services"

	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwt     *auth.JWTManager
	authSvc *services.AuthService
	logr    *zap.Logger
}

type contextKey string

const contextIdentityKey contextKey = "identity"

// NewAuthMiddleware creates a reusable JWT auth middleware instance
func NewAuthMiddleware(jwt *auth.JWTManager, authSvc *services.AuthService, logr *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, authSvc: authSvc, logr: logr}
}

// IdentityFrom extracts the resolved caller from the request context.
func IdentityFrom(ctx context.Context) (authz.Identity, bool) {
	id, ok := ctx.Value(contextIdentityKey).(authz.Identity)
	return id, ok
}

// JWTAuth validates the access token and attaches the resolved Identity to
// the request context. The role normally comes from the token claim; when
// the claim is empty (a token issued before a role assignment) it falls
// back to the role store, so a freshly promoted admin does not have to log
// in again.
func (m *AuthMiddleware) JWTAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwt.VerifyToken(tokenString)
		if err != nil {
			m.logr.Warn("token parse error", zap.Error(err))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if claims["typ"] != string(auth.AccessToken) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		userID, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		roleClaim, _ := claims["role"].(string)
		tokenVersionFloat, _ := claims["ver"].(float64)
		tokenVersion := int(tokenVersionFloat)

		// One user load serves both the token-version check and the stale
		// role fallback.
		u, err := m.authSvc.UserForToken(r.Context(), userID)
		if err != nil {
			m.logr.Warn("token user lookup failed", zap.Error(err), zap.String("user_id", userID))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if u.TokenVersion != tokenVersion {
			m.logr.Warn("token version invalid", zap.String("user_id", userID))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		roleStr := roleClaim
		if roleStr == "" && u.Role != nil {
			roleStr = *u.Role
		}

		var role authz.Role
		if roleStr != "" {
			role, err = authz.ParseRole(roleStr)
			if err != nil {
				// Unknown role strings deny rather than fail the request.
				m.logr.Warn("unparseable role", zap.String("user_id", userID), zap.String("role", roleStr))
				role = authz.Role{}
			}
		}

		identity := authz.Identity{UserID: userID, Email: email, Role: role}
		ctx := context.WithValue(r.Context(), contextIdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
