package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/identity-server/internal/metrics"
	"github.com/dtroode/identity-server/internal/model"
)

type twoFactorSetupResponse struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioning_uri"`
	BackupCodes     []string `json:"backup_codes"`
}

// SetupTwoFactor handles POST /api/auth/2fa/setup. The secret and backup
// codes in the response are shown exactly once.
func (h *Auth) SetupTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	setup, err := h.service.SetupTwoFactor(r.Context(), claims.LoginMethodID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, twoFactorSetupResponse{
		Secret:          setup.Secret,
		ProvisioningURI: setup.ProvisioningURI,
		BackupCodes:     setup.BackupCodes,
	})
}

type twoFactorCodeRequest struct {
	Code string `json:"code"`
}

// VerifyTwoFactor handles POST /api/auth/2fa/verify and activates a pending
// enrollment.
func (h *Auth) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	var req twoFactorCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	if err := h.service.ConfirmTwoFactor(r.Context(), claims.LoginMethodID, req.Code); err != nil {
		metrics.TwoFactorChallengesTotal.WithLabelValues("failure").Inc()
		writeError(w, err)
		return
	}

	metrics.TwoFactorChallengesTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "two-factor authentication enabled"})
}

type twoFactorDisableRequest struct {
	Password string `json:"password"`
}

// DisableTwoFactor handles POST /api/auth/2fa/disable.
func (h *Auth) DisableTwoFactor(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	var req twoFactorDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	if err := h.service.DisableTwoFactor(r.Context(), claims.LoginMethodID, req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "two-factor authentication disabled"})
}

type backupCodesResponse struct {
	BackupCodes []string `json:"backup_codes"`
}

// RegenerateBackupCodes handles POST /api/auth/2fa/backup-codes. The fresh
// batch replaces all previous codes.
func (h *Auth) RegenerateBackupCodes(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	var req twoFactorCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, model.NewValidationError("request body is not valid JSON"))
		return
	}

	codes, err := h.service.RegenerateBackupCodes(r.Context(), claims.LoginMethodID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, backupCodesResponse{BackupCodes: codes})
}

type twoFactorStatusResponse struct {
	Enabled              bool `json:"enabled"`
	RemainingBackupCodes int  `json:"remaining_backup_codes"`
}

// TwoFactorStatus handles GET /api/auth/2fa/status.
func (h *Auth) TwoFactorStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrInvalidOrExpiredToken)
		return
	}

	status, err := h.service.TwoFactorStatus(r.Context(), claims.LoginMethodID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, twoFactorStatusResponse{
		Enabled:              status.Enabled,
		RemainingBackupCodes: status.RemainingBackupCodes,
	})
}
