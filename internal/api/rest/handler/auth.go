package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
	"github.com/dtroode/identity-server/internal/service"
)

// AuthService is the service surface the HTTP handlers depend on.
type AuthService interface {
	Signup(ctx context.Context, req service.SignupRequest) (model.Session, error)
	LoginByPassword(ctx context.Context, req service.LoginRequest) (model.Session, error)
	LoginByOAuth(ctx context.Context, req service.OAuthLoginRequest) (model.Session, error)
	TriggerForgotPasswordEmail(ctx context.Context, emailAddress string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) (model.Session, error)
	SetupTwoFactor(ctx context.Context, loginMethodID uuid.UUID) (model.TwoFactorSetup, error)
	ConfirmTwoFactor(ctx context.Context, loginMethodID uuid.UUID, code string) error
	DisableTwoFactor(ctx context.Context, loginMethodID uuid.UUID, password string) error
	RegenerateBackupCodes(ctx context.Context, loginMethodID uuid.UUID, code string) ([]string, error)
	TwoFactorStatus(ctx context.Context, loginMethodID uuid.UUID) (model.TwoFactorStatus, error)
}

// Auth exposes the authentication flows over HTTP.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{service: service, contextManager: contextManager, logger: logger}
}

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type personResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type sessionResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Person      personResponse `json:"person"`
}

func toSessionResponse(session model.Session) sessionResponse {
	return sessionResponse{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
		Person: personResponse{
			ID:        session.Person.ID,
			FirstName: session.Person.FirstName,
			LastName:  session.Person.LastName,
		},
	}
}

// Signup handles POST /api/auth/signup.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	session, err := h.service.Signup(r.Context(), service.SignupRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	metrics.SignupsTotal.WithLabelValues("password").Inc()
	writeJSON(w, http.StatusCreated, toSessionResponse(session))
}

type loginRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code"`
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	session, err := h.service.LoginByPassword(r.Context(), service.LoginRequest{
		Email:         req.Email,
		Password:      req.Password,
		TwoFactorCode: req.TwoFactorCode,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "failure").Inc()
		writeError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("password", "success").Inc()
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

type oauthLoginRequest struct {
	Provider      string `json:"provider"`
	Code          string `json:"code"`
	RedirectURI   string `json:"redirect_uri"`
	CodeVerifier  string `json:"code_verifier"`
	TwoFactorCode string `json:"two_factor_code"`
}

// OAuthLogin handles POST /api/auth/oauth/exchange.
func (h *Auth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var req oauthLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}
	if req.Provider == "" || req.Code == "" {
		writeError(w, model.NewValidationError("provider and code are required"))
		return
	}

	session, err := h.service.LoginByOAuth(r.Context(), service.OAuthLoginRequest{
		Provider:      req.Provider,
		Code:          req.Code,
		RedirectURI:   req.RedirectURI,
		CodeVerifier:  req.CodeVerifier,
		TwoFactorCode: req.TwoFactorCode,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("oauth", "failure").Inc()
		writeError(w, err)
		return
	}

	metrics.LoginsTotal.WithLabelValues("oauth", "success").Inc()
	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	if err := h.service.TriggerForgotPasswordEmail(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "a password reset email is on its way",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword handles POST /api/auth/reset-password and logs the account
// in with the fresh password.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	session, err := h.service.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// Logout handles POST /api/auth/logout. Access tokens are stateless, so the
// server side has nothing to revoke; the client discards the token.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/auth/me and echoes the verified claims.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	writeJSON(w, http.StatusOK, personResponse{
		ID:        claims.PersonID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	})
}
