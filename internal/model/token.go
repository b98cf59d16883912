package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenCodec produces and consumes signed, time-bounded claim sets.
type TokenCodec interface {
	IssueAccessToken(identity Identity) (token string, expiresAt time.Time, err error)
	// ParseAccessToken fails closed: any signature, shape, or expiry
	// problem yields nil claims. Callers only need "valid or not" on the
	// request-authentication path.
	ParseAccessToken(token string) *AccessClaims
	IssueResetToken(emailID uuid.UUID) (token string, expiresAt time.Time, err error)
	// ParseResetToken returns the email ID the token was bound to, or
	// ErrInvalidOrExpiredToken.
	ParseResetToken(token string) (uuid.UUID, error)
}

// Identity is the snapshot embedded into access tokens at issuance.
type Identity struct {
	Person      Person
	Email       Email
	LoginMethod LoginMethod
}

// AccessClaims are the verified contents of an access token.
type AccessClaims struct {
	LoginMethodID uuid.UUID
	PersonID      uuid.UUID
	EmailID       uuid.UUID
	EmailAddress  string
	FirstName     string
	LastName      string
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// Session is the result of a successful authentication.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	Person      Person
}
