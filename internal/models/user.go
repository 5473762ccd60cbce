package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name         string     `bun:"name,notnull" json:"name"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Role         *string    `bun:"role" json:"role,omitempty"`
	TokenVersion int        `bun:"token_version" json:"-"`
	CreatedAt    time.Time  `bun:"created_at,notnull" json:"created_at"`
	LastLoginAt  *time.Time `bun:"last_login_at" json:"last_login_at,omitempty"`
}

type RefreshToken struct {
	bun.BaseModel `bun:"table:refresh_tokens,alias:rt"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID     uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"`
	JTI        string    `bun:"jti,notnull" json:"jti"`
	TokenHash  string    `bun:"token_hash,notnull" json:"token_hash"`
	DeviceInfo *string   `bun:"device_info" json:"device_info"`
	Revoked    bool      `bun:"revoked" json:"revoked"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
	ExpiresAt  time.Time `bun:"expires_at,notnull" json:"expires_at"`
}
