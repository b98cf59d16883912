package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.LoginMethodStore = (*LoginMethodRepository)(nil)

type LoginMethodRepository struct {
	db *Connection
}

func NewLoginMethodRepository(db *Connection) *LoginMethodRepository {
	return &LoginMethodRepository{
		db: db,
	}
}

const loginMethodColumns = `id, email_id, person_id, kind, password_hash,
	oauth_provider, oauth_subject, two_factor_enabled, two_factor_secret,
	last_totp_counter, created_at, updated_at`

func scanLoginMethod(row pgx.Row) (model.LoginMethod, error) {
	var m model.LoginMethod
	err := row.Scan(
		&m.ID, &m.EmailID, &m.PersonID, &m.Kind, &m.PasswordHash,
		&m.OAuthProvider, &m.OAuthSubject, &m.TwoFactorEnabled, &m.TwoFactorSecret,
		&m.LastTOTPCounter, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *LoginMethodRepository) Create(ctx context.Context, method model.LoginMethod) (model.LoginMethod, error) {
	query := `INSERT INTO login_methods
			  (id, email_id, person_id, kind, password_hash, oauth_provider, oauth_subject,
			   two_factor_enabled, two_factor_secret, last_totp_counter, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + loginMethodColumns

	saved, err := scanLoginMethod(r.db.QueryRow(ctx, query,
		method.ID, method.EmailID, method.PersonID, method.Kind, method.PasswordHash,
		method.OAuthProvider, method.OAuthSubject, method.TwoFactorEnabled,
		method.TwoFactorSecret, method.LastTOTPCounter, method.CreatedAt, method.UpdatedAt,
	))
	if err != nil {
		return model.LoginMethod{}, fmt.Errorf("failed to create login method: %w", err)
	}

	return saved, nil
}

func (r *LoginMethodRepository) GetByID(ctx context.Context, id uuid.UUID) (model.LoginMethod, error) {
	query := `SELECT ` + loginMethodColumns + ` FROM login_methods WHERE id = $1`

	method, err := scanLoginMethod(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoginMethod{}, model.ErrNotFound
		}
		return model.LoginMethod{}, fmt.Errorf("failed to get login method by id: %w", err)
	}

	return method, nil
}

func (r *LoginMethodRepository) GetByEmailID(ctx context.Context, emailID uuid.UUID) (model.LoginMethod, error) {
	query := `SELECT ` + loginMethodColumns + ` FROM login_methods WHERE email_id = $1`

	method, err := scanLoginMethod(r.db.QueryRow(ctx, query, emailID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LoginMethod{}, model.ErrNotFound
		}
		return model.LoginMethod{}, fmt.Errorf("failed to get login method by email id: %w", err)
	}

	return method, nil
}

func (r *LoginMethodRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE login_methods SET password_hash = $2, updated_at = NOW()
			  WHERE id = $1 AND kind = 'password'`

	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *LoginMethodRepository) ConvertToOAuth(ctx context.Context, id uuid.UUID, provider, subject string) error {
	query := `UPDATE login_methods
			  SET kind = 'oauth', password_hash = '', oauth_provider = $2, oauth_subject = $3, updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, provider, subject)
	if err != nil {
		return fmt.Errorf("failed to convert login method to oauth: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *LoginMethodRepository) EnableTwoFactor(ctx context.Context, id uuid.UUID, secret string) error {
	query := `UPDATE login_methods
			  SET two_factor_enabled = TRUE, two_factor_secret = $2, last_totp_counter = 0, updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, secret)
	if err != nil {
		return fmt.Errorf("failed to enable two-factor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *LoginMethodRepository) DisableTwoFactor(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE login_methods
			  SET two_factor_enabled = FALSE, two_factor_secret = '', last_totp_counter = 0, updated_at = NOW()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *LoginMethodRepository) UpdateTOTPCounter(ctx context.Context, id uuid.UUID, counter int64) error {
	query := `UPDATE login_methods SET last_totp_counter = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, counter)
	if err != nil {
		return fmt.Errorf("failed to update totp counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
