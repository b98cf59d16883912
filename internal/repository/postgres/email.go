package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.EmailStore = (*EmailRepository)(nil)

type EmailRepository struct {
	db *Connection
}

func NewEmailRepository(db *Connection) *EmailRepository {
	return &EmailRepository{
		db: db,
	}
}

func (r *EmailRepository) Create(ctx context.Context, email model.Email) (model.Email, error) {
	query := `INSERT INTO emails (id, person_id, address, is_verified, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, person_id, address, is_verified, created_at, updated_at`

	var saved model.Email
	err := r.db.QueryRow(ctx, query,
		email.ID, email.PersonID, email.Address, email.IsVerified, email.CreatedAt, email.UpdatedAt,
	).Scan(
		&saved.ID, &saved.PersonID, &saved.Address, &saved.IsVerified,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Email{}, fmt.Errorf("failed to create email: %w", err)
	}

	return saved, nil
}

func (r *EmailRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Email, error) {
	var email model.Email
	query := `SELECT id, person_id, address, is_verified, created_at, updated_at
			  FROM emails WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&email.ID, &email.PersonID, &email.Address, &email.IsVerified,
		&email.CreatedAt, &email.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Email{}, model.ErrNotFound
		}
		return model.Email{}, fmt.Errorf("failed to get email by id: %w", err)
	}

	return email, nil
}

func (r *EmailRepository) GetByAddress(ctx context.Context, address string) (model.Email, error) {
	var email model.Email
	query := `SELECT id, person_id, address, is_verified, created_at, updated_at
			  FROM emails WHERE LOWER(address) = LOWER($1)`

	err := r.db.QueryRow(ctx, query, address).Scan(
		&email.ID, &email.PersonID, &email.Address, &email.IsVerified,
		&email.CreatedAt, &email.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Email{}, model.ErrNotFound
		}
		return model.Email{}, fmt.Errorf("failed to get email by address: %w", err)
	}

	return email, nil
}

func (r *EmailRepository) GetByPersonID(ctx context.Context, personID uuid.UUID) (model.Email, error) {
	var email model.Email
	query := `SELECT id, person_id, address, is_verified, created_at, updated_at
			  FROM emails WHERE person_id = $1
			  ORDER BY created_at LIMIT 1`

	err := r.db.QueryRow(ctx, query, personID).Scan(
		&email.ID, &email.PersonID, &email.Address, &email.IsVerified,
		&email.CreatedAt, &email.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Email{}, model.ErrNotFound
		}
		return model.Email{}, fmt.Errorf("failed to get email by person id: %w", err)
	}

	return email, nil
}

func (r *EmailRepository) SetVerified(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE emails SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
