package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BackupCodeStore defines persistence operations for 2FA backup codes.
type BackupCodeStore interface {
	// Replace discards all codes of a login method and stores a fresh batch
	// of hashes in a single transaction.
	Replace(ctx context.Context, loginMethodID uuid.UUID, hashes []string) error
	ListUnused(ctx context.Context, loginMethodID uuid.UUID) ([]BackupCode, error)
	// Consume marks a code used. The update is a compare-and-set on the
	// used flag so that two concurrent logins presenting the same code
	// cannot both succeed; the loser gets ErrNotFound.
	Consume(ctx context.Context, id uuid.UUID) error
	CountUnused(ctx context.Context, loginMethodID uuid.UUID) (int, error)
	DeleteByLoginMethodID(ctx context.Context, loginMethodID uuid.UUID) error
}

// BackupCode is a single-use recovery credential. Only the salted hash is
// stored; the plaintext is shown to the user exactly once.
type BackupCode struct {
	ID            uuid.UUID
	LoginMethodID uuid.UUID
	Hash          string
	Used          bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
