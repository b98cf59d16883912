package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.PersonStore = (*PersonRepository)(nil)

type PersonRepository struct {
	db *Connection
}

func NewPersonRepository(db *Connection) *PersonRepository {
	return &PersonRepository{
		db: db,
	}
}

func (r *PersonRepository) Create(ctx context.Context, person model.Person) (model.Person, error) {
	query := `INSERT INTO persons (id, first_name, last_name, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, first_name, last_name, created_at, updated_at, deleted_at`

	var saved model.Person
	err := r.db.QueryRow(ctx, query,
		person.ID, person.FirstName, person.LastName, person.CreatedAt, person.UpdatedAt,
	).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName,
		&saved.CreatedAt, &saved.UpdatedAt, &saved.DeletedAt,
	)
	if err != nil {
		return model.Person{}, fmt.Errorf("failed to create person: %w", err)
	}

	return saved, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Person, error) {
	var person model.Person
	query := `SELECT id, first_name, last_name, created_at, updated_at, deleted_at
			  FROM persons WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&person.ID, &person.FirstName, &person.LastName,
		&person.CreatedAt, &person.UpdatedAt, &person.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Person{}, model.ErrNotFound
		}
		return model.Person{}, fmt.Errorf("failed to get person by id: %w", err)
	}

	return person, nil
}

func (r *PersonRepository) Update(ctx context.Context, person model.Person) (model.Person, error) {
	query := `UPDATE persons SET first_name = $2, last_name = $3, updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING id, first_name, last_name, created_at, updated_at, deleted_at`

	var saved model.Person
	err := r.db.QueryRow(ctx, query, person.ID, person.FirstName, person.LastName).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName,
		&saved.CreatedAt, &saved.UpdatedAt, &saved.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Person{}, model.ErrNotFound
		}
		return model.Person{}, fmt.Errorf("failed to update person: %w", err)
	}

	return saved, nil
}
