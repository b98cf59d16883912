package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

// SetupTwoFactor starts a 2FA enrollment. The secret and plaintext backup
// codes are returned exactly once; nothing on the login method changes until
// the enrollment is confirmed.
func (a *Auth) SetupTwoFactor(ctx context.Context, loginMethodID uuid.UUID) (model.TwoFactorSetup, error) {
	a.logger.Debug("Auth service: starting two-factor setup",
		"login_method_id", loginMethodID)

	method, err := a.loginMethods.GetByID(ctx, loginMethodID)
	if err != nil {
		return model.TwoFactorSetup{}, fmt.Errorf("failed to get login method: %w", err)
	}
	if method.HasTwoFactorEnabled() {
		return model.TwoFactorSetup{}, model.ErrTwoFactorAlreadyEnabled
	}

	email, err := a.emails.GetByID(ctx, method.EmailID)
	if err != nil {
		return model.TwoFactorSetup{}, fmt.Errorf("failed to get email: %w", err)
	}

	secret, err := a.totp.GenerateSecret()
	if err != nil {
		a.logger.Error("Auth service: failed to generate totp secret",
			"login_method_id", loginMethodID,
			"error", err.Error())
		return model.TwoFactorSetup{}, fmt.Errorf("failed to generate totp secret: %w", err)
	}

	codes, err := a.totp.GenerateBackupCodes(a.conf.BackupCodeCount)
	if err != nil {
		return model.TwoFactorSetup{}, fmt.Errorf("failed to generate backup codes: %w", err)
	}

	hashes := make([]string, 0, len(codes))
	for _, code := range codes {
		hash, err := a.hasher.Hash(code)
		if err != nil {
			return model.TwoFactorSetup{}, fmt.Errorf("failed to hash backup code: %w", err)
		}
		hashes = append(hashes, hash)
	}

	err = a.pendingSetups.Create(ctx, model.PendingTwoFactorSetup{
		LoginMethodID:    method.ID,
		Secret:           secret,
		BackupCodeHashes: hashes,
		ExpiresAt:        a.now().Add(model.PendingSetupTTL),
	})
	if err != nil {
		a.logger.Error("Auth service: failed to store pending two-factor setup",
			"login_method_id", loginMethodID,
			"error", err.Error())
		return model.TwoFactorSetup{}, fmt.Errorf("failed to store pending two-factor setup: %w", err)
	}

	a.logger.Info("Auth service: two-factor setup started",
		"login_method_id", loginMethodID)

	return model.TwoFactorSetup{
		Secret:          secret,
		ProvisioningURI: a.totp.ProvisioningURI(secret, email.Address),
		BackupCodes:     codes,
	}, nil
}

// ConfirmTwoFactor completes a pending enrollment. Only a valid code from
// the pending secret activates 2FA on the login method.
func (a *Auth) ConfirmTwoFactor(ctx context.Context, loginMethodID uuid.UUID, code string) error {
	a.logger.Debug("Auth service: confirming two-factor setup",
		"login_method_id", loginMethodID)

	method, err := a.loginMethods.GetByID(ctx, loginMethodID)
	if err != nil {
		return fmt.Errorf("failed to get login method: %w", err)
	}
	if method.HasTwoFactorEnabled() {
		return model.ErrTwoFactorAlreadyEnabled
	}

	pending, err := a.pendingSetups.GetByLoginMethodID(ctx, loginMethodID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrTwoFactorSetupNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get pending two-factor setup: %w", err)
	}
	if pending.Consumed || !a.now().Before(pending.ExpiresAt) {
		return model.ErrTwoFactorSetupNotFound
	}

	ok, counter := a.totp.VerifyCode(pending.Secret, code, a.now())
	if !ok {
		a.logger.Info("Auth service: two-factor confirmation code rejected",
			"login_method_id", loginMethodID)
		return model.ErrInvalidTwoFactorCode
	}

	if err := a.pendingSetups.Consume(ctx, loginMethodID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrTwoFactorSetupNotFound
		}
		return fmt.Errorf("failed to consume pending two-factor setup: %w", err)
	}

	if err := a.loginMethods.EnableTwoFactor(ctx, loginMethodID, pending.Secret); err != nil {
		a.logger.Error("Auth service: failed to enable two-factor",
			"login_method_id", loginMethodID,
			"error", err.Error())
		return fmt.Errorf("failed to enable two-factor: %w", err)
	}

	if err := a.backupCodes.Replace(ctx, loginMethodID, pending.BackupCodeHashes); err != nil {
		return fmt.Errorf("failed to store backup codes: %w", err)
	}

	if a.conf.ReplayProtection {
		if err := a.loginMethods.UpdateTOTPCounter(ctx, loginMethodID, counter); err != nil {
			return fmt.Errorf("failed to update totp counter: %w", err)
		}
	}

	a.logger.Info("Auth service: two-factor enabled",
		"login_method_id", loginMethodID)

	return nil
}

// DisableTwoFactor turns 2FA off after re-authenticating with the account
// password. Backup codes are discarded.
func (a *Auth) DisableTwoFactor(ctx context.Context, loginMethodID uuid.UUID, password string) error {
	a.logger.Debug("Auth service: disabling two-factor",
		"login_method_id", loginMethodID)

	method, err := a.loginMethods.GetByID(ctx, loginMethodID)
	if err != nil {
		return fmt.Errorf("failed to get login method: %w", err)
	}
	if !method.HasTwoFactorEnabled() {
		return model.ErrTwoFactorNotEnabled
	}
	if method.IsOAuth() {
		return &model.WrongLoginMethodError{Provider: method.OAuthProvider}
	}

	ok, err := a.hasher.Verify(password, method.PasswordHash)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: two-factor disable rejected, invalid password",
			"login_method_id", loginMethodID)
		return model.ErrInvalidCredentials
	}

	if err := a.loginMethods.DisableTwoFactor(ctx, loginMethodID); err != nil {
		a.logger.Error("Auth service: failed to disable two-factor",
			"login_method_id", loginMethodID,
			"error", err.Error())
		return fmt.Errorf("failed to disable two-factor: %w", err)
	}

	if err := a.backupCodes.DeleteByLoginMethodID(ctx, loginMethodID); err != nil {
		return fmt.Errorf("failed to delete backup codes: %w", err)
	}

	a.logger.Info("Auth service: two-factor disabled",
		"login_method_id", loginMethodID)

	return nil
}

// RegenerateBackupCodes replaces the whole backup code batch after a valid
// TOTP code. The new plaintext codes are returned exactly once.
func (a *Auth) RegenerateBackupCodes(ctx context.Context, loginMethodID uuid.UUID, code string) ([]string, error) {
	a.logger.Debug("Auth service: regenerating backup codes",
		"login_method_id", loginMethodID)

	method, err := a.loginMethods.GetByID(ctx, loginMethodID)
	if err != nil {
		return nil, fmt.Errorf("failed to get login method: %w", err)
	}
	if !method.HasTwoFactorEnabled() {
		return nil, model.ErrTwoFactorNotEnabled
	}

	if err := a.verifySecondFactor(ctx, method, code); err != nil {
		a.logger.Info("Auth service: backup code regeneration rejected",
			"login_method_id", loginMethodID)
		return nil, err
	}

	codes, err := a.totp.GenerateBackupCodes(a.conf.BackupCodeCount)
	if err != nil {
		return nil, fmt.Errorf("failed to generate backup codes: %w", err)
	}

	hashes := make([]string, 0, len(codes))
	for _, c := range codes {
		hash, err := a.hasher.Hash(c)
		if err != nil {
			return nil, fmt.Errorf("failed to hash backup code: %w", err)
		}
		hashes = append(hashes, hash)
	}

	if err := a.backupCodes.Replace(ctx, loginMethodID, hashes); err != nil {
		a.logger.Error("Auth service: failed to replace backup codes",
			"login_method_id", loginMethodID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to replace backup codes: %w", err)
	}

	a.logger.Info("Auth service: backup codes regenerated",
		"login_method_id", loginMethodID)

	return codes, nil
}

// TwoFactorStatus reports whether 2FA is on and how many backup codes are
// left.
func (a *Auth) TwoFactorStatus(ctx context.Context, loginMethodID uuid.UUID) (model.TwoFactorStatus, error) {
	method, err := a.loginMethods.GetByID(ctx, loginMethodID)
	if err != nil {
		return model.TwoFactorStatus{}, fmt.Errorf("failed to get login method: %w", err)
	}
	if !method.HasTwoFactorEnabled() {
		return model.TwoFactorStatus{}, nil
	}

	remaining, err := a.backupCodes.CountUnused(ctx, loginMethodID)
	if err != nil {
		return model.TwoFactorStatus{}, fmt.Errorf("failed to count backup codes: %w", err)
	}

	return model.TwoFactorStatus{
		Enabled:              true,
		RemainingBackupCodes: remaining,
	}, nil
}
