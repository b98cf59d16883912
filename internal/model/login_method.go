package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LoginMethodKind is a closed set of credential variants. Exactly one
// variant is authoritative per email at a time.
type LoginMethodKind string

const (
	// KindPassword is a salted-hash password credential.
	KindPassword LoginMethodKind = "password"
	// KindOAuth is a credential delegated to an external OAuth provider.
	KindOAuth LoginMethodKind = "oauth"
)

// LoginMethodStore defines persistence operations for login methods.
type LoginMethodStore interface {
	Create(ctx context.Context, method LoginMethod) (LoginMethod, error)
	GetByID(ctx context.Context, id uuid.UUID) (LoginMethod, error)
	GetByEmailID(ctx context.Context, emailID uuid.UUID) (LoginMethod, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	// ConvertToOAuth switches a password method to an OAuth-linked one,
	// clearing the stored password hash.
	ConvertToOAuth(ctx context.Context, id uuid.UUID, provider, subject string) error
	EnableTwoFactor(ctx context.Context, id uuid.UUID, secret string) error
	// DisableTwoFactor clears the TOTP secret and the replay counter.
	DisableTwoFactor(ctx context.Context, id uuid.UUID) error
	// UpdateTOTPCounter records the last accepted TOTP counter for replay
	// protection.
	UpdateTOTPCounter(ctx context.Context, id uuid.UUID, counter int64) error
}

// LoginMethod is the credential record bound to one email.
type LoginMethod struct {
	ID       uuid.UUID
	EmailID  uuid.UUID
	PersonID uuid.UUID
	Kind     LoginMethodKind

	// Password variant. Empty for OAuth-linked methods.
	PasswordHash string

	// OAuth variant.
	OAuthProvider string
	OAuthSubject  string

	// Two-factor state. Secret is present iff TwoFactorEnabled is true.
	TwoFactorEnabled bool
	TwoFactorSecret  string
	LastTOTPCounter  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOAuth reports whether the method delegates to an OAuth provider.
func (m LoginMethod) IsOAuth() bool {
	return m.Kind == KindOAuth
}

// HasTwoFactorEnabled reports whether 2FA is active and properly configured.
func (m LoginMethod) HasTwoFactorEnabled() bool {
	return m.TwoFactorEnabled && m.TwoFactorSecret != ""
}
