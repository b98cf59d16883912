package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxEmailAddressLength is the longest address accepted at signup.
const MaxEmailAddressLength = 254

// EmailStore defines persistence operations for email addresses.
type EmailStore interface {
	Create(ctx context.Context, email Email) (Email, error)
	GetByID(ctx context.Context, id uuid.UUID) (Email, error)
	GetByAddress(ctx context.Context, address string) (Email, error)
	GetByPersonID(ctx context.Context, personID uuid.UUID) (Email, error)
	SetVerified(ctx context.Context, id uuid.UUID) error
}

// Email is an address bound to exactly one person. The address is unique
// across the store.
type Email struct {
	ID         uuid.UUID
	PersonID   uuid.UUID
	Address    string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
