// Package router wires the HTTP handlers, middleware and operational
// endpoints into one chi mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/identity-server/internal/api/rest/handler"
	"github.com/dtroode/identity-server/internal/api/rest/middleware"
	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

// New builds the API router.
func New(
	auth *handler.Auth,
	tokens model.TokenCodec,
	contextManager model.ContextManager,
	log *logger.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewLogging(log).Handle)
	r.Use(middleware.Metrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	authenticate := middleware.NewAuthenticate(tokens, contextManager, log)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", auth.Signup)
		r.Post("/login", auth.Login)
		r.Post("/oauth/exchange", auth.OAuthLogin)
		r.Post("/forgot-password", auth.ForgotPassword)
		r.Post("/reset-password", auth.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticate.Handle)

			r.Get("/me", auth.Me)
			r.Post("/logout", auth.Logout)

			r.Route("/2fa", func(r chi.Router) {
				r.Get("/status", auth.TwoFactorStatus)
				r.Post("/setup", auth.SetupTwoFactor)
				r.Post("/verify", auth.VerifyTwoFactor)
				r.Post("/disable", auth.DisableTwoFactor)
				r.Post("/backup-codes", auth.RegenerateBackupCodes)
			})
		})
	})

	return r
}
