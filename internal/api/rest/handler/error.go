package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/identity-server/internal/model"
)

type errorResponse struct {
	Error             string   `json:"error"`
	Messages          []string `json:"messages,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	TwoFactorRequired bool     `json:"two_factor_required,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to HTTP statuses. Unknown errors collapse to
// a plain 500 so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:    validationErr.Error(),
			Messages: validationErr.Messages,
		})
		return
	}

	var oauthDupErr *model.AlreadyRegisteredViaOAuthError
	if errors.As(err, &oauthDupErr) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:    oauthDupErr.Error(),
			Provider: oauthDupErr.Provider,
		})
		return
	}

	var wrongMethodErr *model.WrongLoginMethodError
	if errors.As(err, &wrongMethodErr) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:    wrongMethodErr.Error(),
			Provider: wrongMethodErr.Provider,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrTwoFactorRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:             err.Error(),
			TwoFactorRequired: true,
		})
	case errors.Is(err, model.ErrNotRegistered),
		errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrInvalidTwoFactorCode),
		errors.Is(err, model.ErrInvalidOrExpiredToken):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrAlreadyRegistered),
		errors.Is(err, model.ErrTwoFactorAlreadyEnabled),
		errors.Is(err, model.ErrTwoFactorNotEnabled):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrTwoFactorSetupNotFound),
		errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
