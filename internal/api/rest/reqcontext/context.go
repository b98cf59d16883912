// Package reqcontext moves verified access claims through request contexts.
package reqcontext

import (
	"context"

	"github.com/dtroode/identity-server/internal/model"
)

type contextKey int

const claimsKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager implements ContextManager over plain context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetClaimsToContext returns a child context carrying the claims.
func (m *Manager) SetClaimsToContext(ctx context.Context, claims *model.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaimsFromContext retrieves the claims stored by the authentication
// middleware.
func (m *Manager) GetClaimsFromContext(ctx context.Context) (*model.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*model.AccessClaims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
