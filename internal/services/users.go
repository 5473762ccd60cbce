package services

import (
	"context"

	"election-bknd/internal/authz"
	"election-bknd/internal/logger"
	model "election-bknd/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserService is the role store: it maps users to the district or upazila
// they administer. Every operation is gated on the caller holding the
// superadmin role; the store itself holds no further authorization logic.
type UserService struct {
	db   *bun.DB
	logr *logger.Logger
}

func NewUserService(db *bun.DB, logr *logger.Logger) *UserService {
	return &UserService{db: db, logr: logr}
}

// ListUsers returns every account with its current role assignment.
func (s *UserService) ListUsers(ctx context.Context, id authz.Identity) ([]UserInfo, error) {
	if err := authorizeSuperadmin(s.logr, id); err != nil {
		return nil, err
	}

	var users []model.User
	if err := s.db.NewSelect().Model(&users).Order("created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}

	out := make([]UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, UserInfo{ID: u.ID.String(), Email: u.Email, Name: u.Name, Role: u.Role})
	}
	return out, nil
}

// SetRole assigns or clears a user's role. A nil role revokes the
// assignment. Non-nil roles must be the superadmin sentinel or a scope
// identifier from the division catalog.
func (s *UserService) SetRole(ctx context.Context, id authz.Identity, userID string, role *string) error {
	if err := authorizeSuperadmin(s.logr, id); err != nil {
		return err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return validationErr("invalid user id")
	}
	if role != nil {
		if _, err := authz.ParseRole(*role); err != nil {
			return validationErr("unknown role %q", *role)
		}
	}

	res, err := s.db.NewUpdate().Model((*model.User)(nil)).
		Set("role = ?", role).
		Where("id = ?", uid).
		Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}

	s.logr.Info("user role changed",
		zap.String("by", id.UserID),
		zap.String("user_id", userID),
		zap.Stringp("role", role))
	return nil
}

// DeleteUser removes an account and revokes its sessions.
func (s *UserService) DeleteUser(ctx context.Context, id authz.Identity, userID string) error {
	if err := authorizeSuperadmin(s.logr, id); err != nil {
		return err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return validationErr("invalid user id")
	}

	if _, err := s.db.NewDelete().Model((*model.RefreshToken)(nil)).Where("user_id = ?", uid).Exec(ctx); err != nil {
		return err
	}
	if _, err := s.db.NewDelete().Model((*model.User)(nil)).Where("id = ?", uid).Exec(ctx); err != nil {
		return err
	}

	s.logr.Info("user deleted", zap.String("by", id.UserID), zap.String("user_id", userID))
	return nil
}
