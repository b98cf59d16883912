package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.PendingTwoFactorSetupStore = (*TwoFactorSetupRepository)(nil)

type TwoFactorSetupRepository struct {
	db *Connection
}

func NewTwoFactorSetupRepository(db *Connection) *TwoFactorSetupRepository {
	return &TwoFactorSetupRepository{
		db: db,
	}
}

// Create upserts on login_method_id so restarting setup always discards the
// previous pending secret.
func (r *TwoFactorSetupRepository) Create(ctx context.Context, setup model.PendingTwoFactorSetup) error {
	query := `INSERT INTO pending_two_factor_setups (login_method_id, secret, backup_code_hashes, expires_at, consumed)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (login_method_id) DO UPDATE
			  SET secret = EXCLUDED.secret,
				  backup_code_hashes = EXCLUDED.backup_code_hashes,
				  expires_at = EXCLUDED.expires_at,
				  consumed = EXCLUDED.consumed`

	_, err := r.db.Exec(ctx, query,
		setup.LoginMethodID, setup.Secret, setup.BackupCodeHashes,
		setup.ExpiresAt, setup.Consumed,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending two-factor setup: %w", err)
	}

	return nil
}

func (r *TwoFactorSetupRepository) GetByLoginMethodID(ctx context.Context, loginMethodID uuid.UUID) (model.PendingTwoFactorSetup, error) {
	var setup model.PendingTwoFactorSetup
	query := `SELECT login_method_id, secret, backup_code_hashes, expires_at, consumed
			  FROM pending_two_factor_setups WHERE login_method_id = $1`

	err := r.db.QueryRow(ctx, query, loginMethodID).Scan(
		&setup.LoginMethodID, &setup.Secret, &setup.BackupCodeHashes,
		&setup.ExpiresAt, &setup.Consumed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PendingTwoFactorSetup{}, model.ErrNotFound
		}
		return model.PendingTwoFactorSetup{}, fmt.Errorf("failed to get pending two-factor setup: %w", err)
	}

	return setup, nil
}

// Consume is a compare-and-set so a pending setup confirms at most once.
func (r *TwoFactorSetupRepository) Consume(ctx context.Context, loginMethodID uuid.UUID) error {
	query := `UPDATE pending_two_factor_setups SET consumed = TRUE
			  WHERE login_method_id = $1 AND consumed = FALSE`

	tag, err := r.db.Exec(ctx, query, loginMethodID)
	if err != nil {
		return fmt.Errorf("failed to consume pending two-factor setup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
