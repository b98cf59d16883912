package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// Authenticate validates bearer tokens and injects the verified claims into
// the request context.
type Authenticate struct {
	tokens         model.TokenCodec
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenCodec, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid access token. Token parsing fails
// closed, so any malformed, tampered or expired token gets a 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			unauthorized(w, "missing authorization token")
			return
		}

		claims := m.tokens.ParseAccessToken(tokenString)
		if claims == nil {
			m.logger.Debug("Authenticate middleware: rejected token",
				"path", r.URL.Path)
			unauthorized(w, "invalid authorization token")
			return
		}

		ctx := m.contextManager.SetClaimsToContext(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
