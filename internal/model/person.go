package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PersonStore defines persistence operations for persons.
type PersonStore interface {
	Create(ctx context.Context, person Person) (Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	Update(ctx context.Context, person Person) (Person, error)
}

// Person represents a human account.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
