package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"election-bknd/internal/auth"
	"election-bknd/internal/config"
	"election-bknd/internal/logger"
	model "election-bknd/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	db   *bun.DB
	jwt  *auth.JWTManager
	cfg  *config.Config
	logr *logger.Logger
}

func NewAuthService(db *bun.DB, jwt *auth.JWTManager, cfg *config.Config, logr *logger.Logger) *AuthService {
	return &AuthService{db: db, jwt: jwt, cfg: cfg, logr: logr}
}

// HashPassword uses bcrypt
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserInfo struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Role  *string `json:"role,omitempty"`
}

// Signup registers a user with no role. A superadmin assigns a district or
// upazila later; until then the account cannot sign in or mutate anything.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*UserInfo, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if len(req.Name) < 2 {
		return nil, validationErr("name must be at least 2 characters")
	}
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return nil, validationErr("invalid email address")
	}
	if len(req.Password) < 8 {
		return nil, validationErr("password must be at least 8 characters")
	}

	exists, err := s.db.NewSelect().Model((*model.User)(nil)).Where("email = ?", req.Email).Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationErr("email already in use")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(&u).Exec(ctx); err != nil {
		return nil, err
	}

	s.logr.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("email", u.Email))
	return &UserInfo{ID: u.ID.String(), Email: u.Email, Name: u.Name}, nil
}

// Login authenticates by email and password. Accounts without an assigned
// role cannot sign in; the response does not say which check failed.
func (s *AuthService) Login(ctx context.Context, email, password, deviceInfo string) (*auth.TokenPair, *UserInfo, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var u model.User
	err := s.db.NewSelect().Model(&u).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, err
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return nil, nil, ErrUnauthorized
	}
	if u.Role == nil || *u.Role == "" {
		s.logr.Warn("login denied: no role assigned", zap.String("user_id", u.ID.String()))
		return nil, nil, ErrUnauthorized
	}

	now := time.Now().UTC()
	_, _ = s.db.NewUpdate().Model((*model.User)(nil)).
		Set("last_login_at = ?", now).
		Where("id = ?", u.ID).
		Exec(ctx)

	pair, err := s.jwt.GenerateTokenPair(u.ID.String(), u.Email, *u.Role, s.cfg.AccessTokenTTL, s.cfg.RefreshTokenTTL, u.TokenVersion)
	if err != nil {
		return nil, nil, err
	}
	if err := s.storeRefreshToken(ctx, u.ID, pair.RefreshToken, pair.RefreshExp, pair.JTI, deviceInfo); err != nil {
		return nil, nil, err
	}

	return pair, &UserInfo{ID: u.ID.String(), Email: u.Email, Name: u.Name, Role: u.Role}, nil
}

// storeRefreshToken stores the refresh token hashed and enforces 2 sessions per user
func (s *AuthService) storeRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string, expiresAt time.Time, jti string, deviceInfo string) error {
	now := time.Now().UTC()

	// cleanup expired tokens for user
	_, _ = s.db.NewDelete().Model((*model.RefreshToken)(nil)).
		Where("user_id = ? AND expires_at < ?", userID, now).
		Exec(ctx)

	// enforce max 2 active sessions (non-revoked & not expired)
	var count int
	err := s.db.NewSelect().ColumnExpr("count(*)").Table("refresh_tokens").
		Where("user_id = ? AND revoked = ? AND expires_at > ?", userID, false, now).
		Scan(ctx, &count)
	if err == nil && count >= 2 {
		toRemove := count - 1 // leave 1 plus the new token
		_, _ = s.db.NewDelete().Model((*model.RefreshToken)(nil)).
			Where("id IN (SELECT id FROM refresh_tokens WHERE user_id = ? AND revoked = ? AND expires_at > ? ORDER BY created_at ASC LIMIT ?)",
				userID, false, now, toRemove).
			Exec(ctx)
	}

	rt := model.RefreshToken{
		ID:         uuid.New(),
		UserID:     userID,
		JTI:        jti,
		TokenHash:  auth.HashToken(refreshToken),
		DeviceInfo: &deviceInfo,
		Revoked:    false,
		CreatedAt:  now,
		ExpiresAt:  expiresAt,
	}
	_, err = s.db.NewInsert().Model(&rt).Exec(ctx)
	return err
}

// Refresh verifies the refresh JWT, finds the stored record by JTI and
// hash, and rotates the pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, deviceInfo string) (*auth.TokenPair, error) {
	claims, err := s.jwt.VerifyToken(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if claims["typ"] != string(auth.RefreshToken) {
		return nil, ErrUnauthorized
	}
	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrUnauthorized
	}

	now := time.Now().UTC()
	hashed := auth.HashToken(refreshToken)

	var rt model.RefreshToken
	err = s.db.NewSelect().Model(&rt).
		Where("jti = ? AND token_hash = ? AND revoked = ? AND expires_at > ?", jti, hashed, false, now).
		Scan(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	var u model.User
	if err := s.db.NewSelect().Model(&u).Where("id = ?", rt.UserID).Scan(ctx); err != nil {
		return nil, ErrUnauthorized
	}

	// rotate: revoke old token, issue and store a new pair
	_, _ = s.db.NewUpdate().Model((*model.RefreshToken)(nil)).
		Set("revoked = ?", true).
		Where("id = ?", rt.ID).
		Exec(ctx)

	role := ""
	if u.Role != nil {
		role = *u.Role
	}
	pair, err := s.jwt.GenerateTokenPair(u.ID.String(), u.Email, role, s.cfg.AccessTokenTTL, s.cfg.RefreshTokenTTL, u.TokenVersion)
	if err != nil {
		return nil, err
	}
	if err := s.storeRefreshToken(ctx, u.ID, pair.RefreshToken, pair.RefreshExp, pair.JTI, deviceInfo); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes a refresh token by its JTI.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwt.VerifyToken(refreshToken)
	if err != nil {
		return ErrUnauthorized
	}
	jti, ok := claims["jti"].(string)
	if !ok {
		return ErrUnauthorized
	}
	_, err = s.db.NewUpdate().Model((*model.RefreshToken)(nil)).
		Set("revoked = ?", true).
		Where("jti = ?", jti).
		Exec(ctx)
	return err
}

// UserForToken loads the user a verified token belongs to. The middleware
// uses it to check the token version and to recover the role when the token
// was issued before a role assignment.
func (s *AuthService) UserForToken(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := s.db.NewSelect().Model(&u).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &u, nil
}
