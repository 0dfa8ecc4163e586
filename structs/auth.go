package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// Role of an authenticated user. Exactly two variants exist.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// User is the session identity persisted for the browsing context. It is
// the single source of truth for authorization gating.
type User struct {
	Uid      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
	Role     Role   `json:"role"`
}

// AuthResult is returned by login/register instead of an error so callers
// must check the success flag rather than rely on control-flow interruption.
type AuthResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type AuthClaims struct {
	Sub      string    `json:"sub"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	Verified bool      `json:"verified"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=100"`
}

type RecoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,max=100"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// Account is the durable account record owned by the identity provider.
// The password hash never leaves the provider.
type Account struct {
	Uid          string    `json:"uid"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	Role         Role      `json:"role"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitempty"`
}

// TokenPurpose distinguishes one-shot account tokens.
type TokenPurpose string

const (
	TokenVerifyEmail   TokenPurpose = "verify_email"
	TokenResetPassword TokenPurpose = "reset_password"
)

// AccountToken is a one-shot verification or password-reset token.
type AccountToken struct {
	Token     string       `json:"token"`
	Uid       string       `json:"uid"`
	Purpose   TokenPurpose `json:"purpose"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`
}
