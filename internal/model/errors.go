package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores when an entity does not exist.
var ErrNotFound = errors.New("not found")

// Authentication failures. Each kind is distinct on purpose: the boundary
// layer maps every one of them to a specific user-facing message instead of
// a generic "login failed".
var (
	ErrNotRegistered        = errors.New("no account registered for this email")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrTwoFactorRequired    = errors.New("two-factor authentication code required")
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor authentication code")
)

// Two-factor management failures.
var (
	ErrTwoFactorNotEnabled     = errors.New("two-factor authentication is not enabled for this account")
	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication is already enabled for this account")
	ErrTwoFactorSetupNotFound  = errors.New("no pending two-factor setup found")
)

// ErrInvalidOrExpiredToken is returned when a password reset token fails
// signature, shape, or expiry checks.
var ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

// ErrAlreadyRegistered is returned on signup when the email already has a
// password-based account.
var ErrAlreadyRegistered = errors.New("email is already registered")

// AlreadyRegisteredViaOAuthError is returned on signup when the email is
// bound to an OAuth account. It carries the provider so callers can prompt
// "sign in with {provider}" instead of a generic duplicate message.
type AlreadyRegisteredViaOAuthError struct {
	Provider string
}

func (e *AlreadyRegisteredViaOAuthError) Error() string {
	return fmt.Sprintf("email is already registered via %s", e.Provider)
}

// WrongLoginMethodError is returned when a password login is attempted for
// an OAuth-linked account.
type WrongLoginMethodError struct {
	Provider string
}

func (e *WrongLoginMethodError) Error() string {
	return fmt.Sprintf("this account uses %s sign-in", e.Provider)
}

// ValidationError reports malformed input detected before any state change.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError creates a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
