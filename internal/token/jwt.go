package token

import (
	"fmt"
	"time"

	"github.com/dtroode/identity-server/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT claims with token type and identity snapshot.
type Claims struct {
	jwt.RegisteredClaims
	TokenType     string    `json:"typ"`
	LoginMethodID uuid.UUID `json:"login_method_id,omitempty"`
	PersonID      uuid.UUID `json:"person_id,omitempty"`
	EmailID       uuid.UUID `json:"email_id,omitempty"`
	EmailAddress  string    `json:"email,omitempty"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
}

const (
	typeAccess = "access"
	typeReset  = "reset"
)

// JWT implements TokenCodec backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
	resetTTL  time.Duration
	now       func() time.Time
}

var _ model.TokenCodec = (*JWT)(nil)

// Option configures a JWT codec.
type Option func(*JWT)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a new JWT token codec with the provided secret key and TTLs.
func NewJWT(secretKey string, accessTTL, resetTTL time.Duration, opts ...Option) *JWT {
	j := &JWT{
		secretKey: secretKey,
		accessTTL: accessTTL,
		resetTTL:  resetTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// IssueAccessToken creates an access token carrying the identity snapshot.
func (j *JWT) IssueAccessToken(identity model.Identity) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.accessTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType:     typeAccess,
		LoginMethodID: identity.LoginMethod.ID,
		PersonID:      identity.Person.ID,
		EmailID:       identity.Email.ID,
		EmailAddress:  identity.Email.Address,
		FirstName:     identity.Person.FirstName,
		LastName:      identity.Person.LastName,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseAccessToken validates an access token and returns its claims. Any
// failure, including a token expiring exactly now, yields nil.
func (j *JWT) ParseAccessToken(tokenString string) *model.AccessClaims {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return nil
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil
	}
	if !j.now().Before(claims.ExpiresAt.Time) {
		return nil
	}

	return &model.AccessClaims{
		LoginMethodID: claims.LoginMethodID,
		PersonID:      claims.PersonID,
		EmailID:       claims.EmailID,
		EmailAddress:  claims.EmailAddress,
		FirstName:     claims.FirstName,
		LastName:      claims.LastName,
		IssuedAt:      claims.IssuedAt.Time,
		ExpiresAt:     claims.ExpiresAt.Time,
	}
}

// IssueResetToken creates a short-lived token bound to an email ID for the
// password reset flow.
func (j *JWT) IssueResetToken(emailID uuid.UUID) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.resetTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: typeReset,
		EmailID:   emailID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign reset token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ParseResetToken validates a reset token and extracts the email ID.
func (j *JWT) ParseResetToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, typeReset)
	if err != nil {
		return uuid.Nil, model.ErrInvalidOrExpiredToken
	}
	if claims.ExpiresAt == nil || !j.now().Before(claims.ExpiresAt.Time) {
		return uuid.Nil, model.ErrInvalidOrExpiredToken
	}
	if claims.EmailID == uuid.Nil {
		return uuid.Nil, model.ErrInvalidOrExpiredToken
	}
	return claims.EmailID, nil
}

func (j *JWT) parse(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	return claims, nil
}
