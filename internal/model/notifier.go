package model

import "context"

// Notifier dispatches templated messages to users. Dispatch is fire and
// forget: callers log failures and continue, so a broken mail pipeline can
// never fail a signup or a password reset request.
type Notifier interface {
	SendWelcome(ctx context.Context, address, firstName string) error
	SendPasswordReset(ctx context.Context, address, resetURL string) error
}
