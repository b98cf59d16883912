package model

import "context"

// ContextManager moves verified access claims in and out of a request
// context.
type ContextManager interface {
	SetClaimsToContext(ctx context.Context, claims *AccessClaims) context.Context
	GetClaimsFromContext(ctx context.Context) (*AccessClaims, bool)
}
