package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.BackupCodeStore = (*BackupCodeRepository)(nil)

type BackupCodeRepository struct {
	db *Connection
}

func NewBackupCodeRepository(db *Connection) *BackupCodeRepository {
	return &BackupCodeRepository{
		db: db,
	}
}

// Replace swaps the whole code batch in one transaction so a failure cannot
// leave the account with a partial set.
func (r *BackupCodeRepository) Replace(ctx context.Context, loginMethodID uuid.UUID, hashes []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM backup_codes WHERE login_method_id = $1`, loginMethodID); err != nil {
		return fmt.Errorf("failed to delete previous backup codes: %w", err)
	}

	insert := `INSERT INTO backup_codes (id, login_method_id, hash, used, created_at, updated_at)
			   VALUES ($1, $2, $3, FALSE, $4, $4)`
	now := time.Now()
	for _, hash := range hashes {
		if _, err := tx.Exec(ctx, insert, uuid.New(), loginMethodID, hash, now); err != nil {
			return fmt.Errorf("failed to insert backup code: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit backup code batch: %w", err)
	}

	return nil
}

func (r *BackupCodeRepository) ListUnused(ctx context.Context, loginMethodID uuid.UUID) ([]model.BackupCode, error) {
	query := `SELECT id, login_method_id, hash, used, created_at, updated_at
			  FROM backup_codes WHERE login_method_id = $1 AND used = FALSE`

	rows, err := r.db.Query(ctx, query, loginMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup codes: %w", err)
	}
	defer rows.Close()

	var codes []model.BackupCode
	for rows.Next() {
		var c model.BackupCode
		if err := rows.Scan(&c.ID, &c.LoginMethodID, &c.Hash, &c.Used, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup code: %w", err)
		}
		codes = append(codes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backup codes: %w", err)
	}

	return codes, nil
}

// Consume is a compare-and-set on the used flag; a code already consumed by
// a concurrent request yields ErrNotFound.
func (r *BackupCodeRepository) Consume(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE backup_codes SET used = TRUE, updated_at = NOW()
			  WHERE id = $1 AND used = FALSE`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to consume backup code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *BackupCodeRepository) CountUnused(ctx context.Context, loginMethodID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM backup_codes WHERE login_method_id = $1 AND used = FALSE`

	var count int
	if err := r.db.QueryRow(ctx, query, loginMethodID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count backup codes: %w", err)
	}

	return count, nil
}

func (r *BackupCodeRepository) DeleteByLoginMethodID(ctx context.Context, loginMethodID uuid.UUID) error {
	query := `DELETE FROM backup_codes WHERE login_method_id = $1`

	if _, err := r.db.Exec(ctx, query, loginMethodID); err != nil {
		return fmt.Errorf("failed to delete backup codes: %w", err)
	}

	return nil
}
