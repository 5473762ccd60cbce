package services

import (
	"election-bknd/internal/authz"
	"election-bknd/internal/logger"

	"go.uber.org/zap"
)

// authorize runs the guard for a scoped mutation. It must complete before
// any persistence call so a denial leaves no partial side effect. The
// distinct denial cause is logged for audit but the returned error is the
// same in every case.
func authorize(logr *logger.Logger, id authz.Identity, scopeID string) error {
	if id.Role.Allows(scopeID) {
		return nil
	}
	if id.Role.IsZero() {
		logr.Warn("mutation denied: no role assigned",
			zap.String("user_id", id.UserID),
			zap.String("scope", scopeID))
	} else {
		logr.Warn("mutation denied: scope mismatch",
			zap.String("user_id", id.UserID),
			zap.String("role", id.Role.String()),
			zap.String("scope", scopeID))
	}
	return ErrUnauthorized
}

// authorizeSuperadmin gates operations reserved for the global admin.
func authorizeSuperadmin(logr *logger.Logger, id authz.Identity) error {
	if id.Role.IsSuperadmin() {
		return nil
	}
	logr.Warn("superadmin operation denied",
		zap.String("user_id", id.UserID),
		zap.String("role", id.Role.String()))
	return ErrUnauthorized
}
