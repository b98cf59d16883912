package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PendingSetupTTL is how long a started 2FA setup stays confirmable.
const PendingSetupTTL = time.Minute * 10

// PendingTwoFactorSetupStore persists in-flight 2FA setups. A pending setup
// is transient: nothing is written to the login method until the user
// confirms with a valid code, so an abandoned setup changes no account state.
type PendingTwoFactorSetupStore interface {
	// Create replaces any previous pending setup for the login method.
	Create(ctx context.Context, setup PendingTwoFactorSetup) error
	GetByLoginMethodID(ctx context.Context, loginMethodID uuid.UUID) (PendingTwoFactorSetup, error)
	// Consume marks a pending setup used; it can only succeed once.
	Consume(ctx context.Context, loginMethodID uuid.UUID) error
}

// PendingTwoFactorSetup describes a started but unconfirmed 2FA enrollment.
// BackupCodeHashes are hashed eagerly so the plaintext codes exist only in
// the setup response shown once to the user.
type PendingTwoFactorSetup struct {
	LoginMethodID    uuid.UUID
	Secret           string
	BackupCodeHashes []string
	ExpiresAt        time.Time
	Consumed         bool
}

// TwoFactorSetup is returned when a 2FA enrollment is started. Secret and
// Codes are shown exactly once.
type TwoFactorSetup struct {
	Secret          string
	ProvisioningURI string
	BackupCodes     []string
}

// TwoFactorStatus reports the 2FA state of an account.
type TwoFactorStatus struct {
	Enabled              bool
	RemainingBackupCodes int
}

// TOTPEngine generates and verifies time-based one-time credentials.
type TOTPEngine interface {
	GenerateSecret() (string, error)
	ProvisioningURI(secret, account string) string
	// VerifyCode checks a 6-digit code against the secret with clock-skew
	// tolerance and returns the matched time-step counter.
	VerifyCode(secret, code string, now time.Time) (bool, int64)
	GenerateBackupCodes(count int) ([]string, error)
}
