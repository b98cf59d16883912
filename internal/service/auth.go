package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/logger"
	"github.com/dtroode/identity-server/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthConfig carries the tunables of the authentication flows.
type AuthConfig struct {
	ReplayProtection        bool
	BackupCodeCount         int
	ResetURLBase            string
	DefaultOrganizationName string
}

// AuthDeps lists the collaborators of the Auth service.
type AuthDeps struct {
	Persons           model.PersonStore
	Emails            model.EmailStore
	LoginMethods      model.LoginMethodStore
	BackupCodes       model.BackupCodeStore
	PendingSetups     model.PendingTwoFactorSetupStore
	Organizations     model.OrganizationStore
	OrganizationRoles model.PersonOrganizationRoleStore
	Tokens            model.TokenCodec
	TOTP              model.TOTPEngine
	Hasher            model.PasswordHasher
	Notifier          model.Notifier
	OAuth             model.OAuthBroker
	Logger            *logger.Logger
	Config            AuthConfig
}

// Auth implements signup, login, password reset and two-factor flows.
type Auth struct {
	persons       model.PersonStore
	emails        model.EmailStore
	loginMethods  model.LoginMethodStore
	backupCodes   model.BackupCodeStore
	pendingSetups model.PendingTwoFactorSetupStore
	orgs          model.OrganizationStore
	orgRoles      model.PersonOrganizationRoleStore
	tokens        model.TokenCodec
	totp          model.TOTPEngine
	hasher        model.PasswordHasher
	notifier      model.Notifier
	oauth         model.OAuthBroker
	logger        *logger.Logger
	conf          AuthConfig
	now           func() time.Time
	validatePass  func(string) error
}

func NewAuth(deps AuthDeps) *Auth {
	return &Auth{
		persons:       deps.Persons,
		emails:        deps.Emails,
		loginMethods:  deps.LoginMethods,
		backupCodes:   deps.BackupCodes,
		pendingSetups: deps.PendingSetups,
		orgs:          deps.Organizations,
		orgRoles:      deps.OrganizationRoles,
		tokens:        deps.Tokens,
		totp:          deps.TOTP,
		hasher:        deps.Hasher,
		notifier:      deps.Notifier,
		oauth:         deps.OAuth,
		logger:        deps.Logger,
		conf:          deps.Config,
		now:           time.Now,
	}
}

// SetPasswordValidator overrides the password policy check. The default is
// installed by the caller wiring the service; tests may relax it.
func (a *Auth) SetPasswordValidator(validate func(string) error) {
	a.validatePass = validate
}

// SignupRequest carries the fields of a password signup.
type SignupRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Signup registers a password account, provisions the default organization
// and returns an authenticated session.
func (a *Auth) Signup(ctx context.Context, req SignupRequest) (model.Session, error) {
	a.logger.Debug("Auth service: starting signup",
		"email", req.Email)

	address, err := normalizeEmail(req.Email)
	if err != nil {
		return model.Session{}, err
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return model.Session{}, model.NewValidationError("first name is required")
	}
	if a.validatePass != nil {
		if err := a.validatePass(req.Password); err != nil {
			return model.Session{}, err
		}
	}

	existing, err := a.emails.GetByAddress(ctx, address)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get email by address",
			"email", address,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get email by address: %w", err)
	}
	if existing.ID != uuid.Nil {
		method, err := a.loginMethods.GetByEmailID(ctx, existing.ID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return model.Session{}, fmt.Errorf("failed to get login method: %w", err)
		}
		if method.IsOAuth() {
			a.logger.Info("Auth service: email already registered via oauth",
				"email", address,
				"provider", method.OAuthProvider)
			return model.Session{}, &model.AlreadyRegisteredViaOAuthError{Provider: method.OAuthProvider}
		}
		a.logger.Info("Auth service: email already registered",
			"email", address)
		return model.Session{}, model.ErrAlreadyRegistered
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", address,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	identity, err := a.createAccount(ctx, accountSeed{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Address:      address,
		Kind:         model.KindPassword,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return model.Session{}, err
	}

	if err := a.notifier.SendWelcome(ctx, address, identity.Person.FirstName); err != nil {
		a.logger.Error("Auth service: failed to queue welcome email",
			"email", address,
			"error", err.Error())
	}

	a.logger.Info("Auth service: signup completed successfully",
		"email", address,
		"person_id", identity.Person.ID)

	return a.issueSession(identity)
}

// LoginRequest carries the fields of a password login. TwoFactorCode is a
// TOTP code or a backup code; it is empty on the first attempt.
type LoginRequest struct {
	Email         string
	Password      string
	TwoFactorCode string
}

// LoginByPassword authenticates a password account, enforcing the second
// factor when enabled.
func (a *Auth) LoginByPassword(ctx context.Context, req LoginRequest) (model.Session, error) {
	a.logger.Debug("Auth service: starting password login",
		"email", req.Email)

	address, err := normalizeEmail(req.Email)
	if err != nil {
		return model.Session{}, err
	}

	email, err := a.emails.GetByAddress(ctx, address)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unregistered email",
			"email", address)
		return model.Session{}, model.ErrNotRegistered
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get email by address: %w", err)
	}

	method, err := a.loginMethods.GetByEmailID(ctx, email.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to get login method",
			"email", address,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to get login method: %w", err)
	}
	if method.IsOAuth() {
		a.logger.Info("Auth service: password login against oauth account",
			"email", address,
			"provider", method.OAuthProvider)
		return model.Session{}, &model.WrongLoginMethodError{Provider: method.OAuthProvider}
	}

	ok, err := a.hasher.Verify(req.Password, method.PasswordHash)
	if err != nil {
		a.logger.Error("Auth service: failed to verify password",
			"email", address,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		a.logger.Info("Auth service: invalid password",
			"email", address)
		return model.Session{}, model.ErrInvalidCredentials
	}

	if method.HasTwoFactorEnabled() {
		if req.TwoFactorCode == "" {
			return model.Session{}, model.ErrTwoFactorRequired
		}
		if err := a.verifySecondFactor(ctx, method, req.TwoFactorCode); err != nil {
			a.logger.Info("Auth service: second factor rejected",
				"email", address)
			return model.Session{}, err
		}
	}

	person, err := a.persons.GetByID(ctx, method.PersonID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get person: %w", err)
	}

	a.logger.Info("Auth service: password login completed successfully",
		"email", address,
		"person_id", person.ID)

	return a.issueSession(model.Identity{Person: person, Email: email, LoginMethod: method})
}

// OAuthLoginRequest carries the fields of an OAuth code exchange.
// TwoFactorCode gates accounts with 2FA enabled, exactly as on password
// login. PersonIDHint pins the id of a person created on first contact.
type OAuthLoginRequest struct {
	Provider      string
	Code          string
	RedirectURI   string
	CodeVerifier  string
	TwoFactorCode string
	PersonIDHint  uuid.UUID
}

// LoginByOAuth exchanges the authorization code with the provider and logs
// the resulting profile in, registering the account on first contact.
func (a *Auth) LoginByOAuth(ctx context.Context, req OAuthLoginRequest) (model.Session, error) {
	a.logger.Debug("Auth service: starting oauth login",
		"provider", req.Provider)

	profile, err := a.oauth.Exchange(ctx, req.Provider, req.Code, req.RedirectURI, req.CodeVerifier)
	if err != nil {
		a.logger.Error("Auth service: oauth exchange failed",
			"provider", req.Provider,
			"error", err.Error())
		return model.Session{}, model.ErrInvalidCredentials
	}

	return a.LoginByOAuthProfile(ctx, profile, req)
}

// LoginByOAuthProfile logs a verified provider profile in. A password
// account with the same email is converted to the OAuth method, matching
// the provider's ownership proof of the address. Accounts with 2FA enabled
// still have to pass the second-factor gate.
func (a *Auth) LoginByOAuthProfile(ctx context.Context, profile model.OAuthProfile, req OAuthLoginRequest) (model.Session, error) {
	address, err := normalizeEmail(profile.Email)
	if err != nil {
		return model.Session{}, err
	}

	email, err := a.emails.GetByAddress(ctx, address)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to get email by address: %w", err)
	}

	if email.ID == uuid.Nil {
		identity, err := a.createAccount(ctx, accountSeed{
			PersonID:      req.PersonIDHint,
			FirstName:     firstNonEmpty(profile.FirstName, address),
			LastName:      profile.LastName,
			Address:       address,
			Verified:      true,
			Kind:          model.KindOAuth,
			OAuthProvider: profile.Provider,
			OAuthSubject:  profile.Subject,
		})
		if err != nil {
			return model.Session{}, err
		}

		if err := a.notifier.SendWelcome(ctx, address, identity.Person.FirstName); err != nil {
			a.logger.Error("Auth service: failed to queue welcome email",
				"email", address,
				"error", err.Error())
		}

		a.logger.Info("Auth service: oauth signup completed successfully",
			"email", address,
			"provider", profile.Provider)

		return a.issueSession(identity)
	}

	method, err := a.loginMethods.GetByEmailID(ctx, email.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get login method: %w", err)
	}

	if method.IsOAuth() && (method.OAuthProvider != profile.Provider || method.OAuthSubject != profile.Subject) {
		a.logger.Info("Auth service: oauth identity mismatch",
			"email", address,
			"provider", profile.Provider)
		return model.Session{}, model.ErrInvalidCredentials
	}

	if method.HasTwoFactorEnabled() {
		if req.TwoFactorCode == "" {
			return model.Session{}, model.ErrTwoFactorRequired
		}
		if err := a.verifySecondFactor(ctx, method, req.TwoFactorCode); err != nil {
			a.logger.Info("Auth service: second factor rejected",
				"email", address)
			return model.Session{}, err
		}
	}

	if !method.IsOAuth() {
		if err := a.loginMethods.ConvertToOAuth(ctx, method.ID, profile.Provider, profile.Subject); err != nil {
			a.logger.Error("Auth service: failed to convert login method to oauth",
				"email", address,
				"error", err.Error())
			return model.Session{}, fmt.Errorf("failed to convert login method to oauth: %w", err)
		}
		method, err = a.loginMethods.GetByID(ctx, method.ID)
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to get login method: %w", err)
		}
	}

	if !email.IsVerified {
		if err := a.emails.SetVerified(ctx, email.ID); err != nil {
			return model.Session{}, fmt.Errorf("failed to mark email verified: %w", err)
		}
		email.IsVerified = true
	}

	person, err := a.persons.GetByID(ctx, method.PersonID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get person: %w", err)
	}

	a.logger.Info("Auth service: oauth login completed successfully",
		"email", address,
		"provider", profile.Provider,
		"person_id", person.ID)

	return a.issueSession(model.Identity{Person: person, Email: email, LoginMethod: method})
}

// GenerateResetPasswordToken issues a short-lived reset token bound to the
// email of a password account. Returns ErrNotFound for an unknown address
// and WrongLoginMethodError for an OAuth-linked one.
func (a *Auth) GenerateResetPasswordToken(ctx context.Context, emailAddress string) (string, error) {
	address, err := normalizeEmail(emailAddress)
	if err != nil {
		return "", err
	}

	email, err := a.emails.GetByAddress(ctx, address)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: password reset for unregistered email",
			"email", address)
		return "", model.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get email by address: %w", err)
	}

	method, err := a.loginMethods.GetByEmailID(ctx, email.ID)
	if err != nil {
		return "", fmt.Errorf("failed to get login method: %w", err)
	}
	if method.IsOAuth() {
		return "", &model.WrongLoginMethodError{Provider: method.OAuthProvider}
	}

	resetToken, _, err := a.tokens.IssueResetToken(email.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue reset token",
			"email", address,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	return resetToken, nil
}

// TriggerForgotPasswordEmail queues a password reset email.
func (a *Auth) TriggerForgotPasswordEmail(ctx context.Context, emailAddress string) error {
	a.logger.Debug("Auth service: starting password reset request",
		"email", emailAddress)

	address, err := normalizeEmail(emailAddress)
	if err != nil {
		return err
	}

	resetToken, err := a.GenerateResetPasswordToken(ctx, address)
	if err != nil {
		return err
	}

	resetURL := a.conf.ResetURLBase + "?token=" + url.QueryEscape(resetToken)
	if err := a.notifier.SendPasswordReset(ctx, address, resetURL); err != nil {
		a.logger.Error("Auth service: failed to queue password reset email",
			"email", address,
			"error", err.Error())
	}

	a.logger.Info("Auth service: password reset email queued",
		"email", address)

	return nil
}

// ResetPassword sets a new password for the account a valid reset token is
// bound to, marks the email verified and returns a fresh session. Two-factor
// settings are left untouched.
func (a *Auth) ResetPassword(ctx context.Context, resetToken, newPassword string) (model.Session, error) {
	a.logger.Debug("Auth service: starting password reset")

	emailID, err := a.tokens.ParseResetToken(resetToken)
	if err != nil {
		return model.Session{}, err
	}
	if a.validatePass != nil {
		if err := a.validatePass(newPassword); err != nil {
			return model.Session{}, err
		}
	}

	method, err := a.loginMethods.GetByEmailID(ctx, emailID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrInvalidOrExpiredToken
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get login method: %w", err)
	}
	if method.IsOAuth() {
		return model.Session{}, &model.WrongLoginMethodError{Provider: method.OAuthProvider}
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.loginMethods.UpdatePassword(ctx, method.ID, passwordHash); err != nil {
		a.logger.Error("Auth service: failed to update password",
			"login_method_id", method.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to update password: %w", err)
	}

	email, err := a.emails.GetByID(ctx, emailID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get email: %w", err)
	}
	if !email.IsVerified {
		if err := a.emails.SetVerified(ctx, email.ID); err != nil {
			return model.Session{}, fmt.Errorf("failed to mark email verified: %w", err)
		}
		email.IsVerified = true
	}

	person, err := a.persons.GetByID(ctx, method.PersonID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get person: %w", err)
	}

	a.logger.Info("Auth service: password reset completed successfully",
		"login_method_id", method.ID)

	method.PasswordHash = passwordHash
	return a.issueSession(model.Identity{Person: person, Email: email, LoginMethod: method})
}

// verifySecondFactor accepts a TOTP code or an unused backup code. A TOTP
// match at a counter at or below the last accepted one is a replay and is
// rejected when replay protection is on.
func (a *Auth) verifySecondFactor(ctx context.Context, method model.LoginMethod, code string) error {
	ok, counter := a.totp.VerifyCode(method.TwoFactorSecret, code, a.now())
	if ok {
		if a.conf.ReplayProtection {
			if counter <= method.LastTOTPCounter {
				return model.ErrInvalidTwoFactorCode
			}
			if err := a.loginMethods.UpdateTOTPCounter(ctx, method.ID, counter); err != nil {
				return fmt.Errorf("failed to update totp counter: %w", err)
			}
		}
		return nil
	}

	codes, err := a.backupCodes.ListUnused(ctx, method.ID)
	if err != nil {
		return fmt.Errorf("failed to list backup codes: %w", err)
	}
	for _, candidate := range codes {
		match, err := a.hasher.Verify(code, candidate.Hash)
		if err != nil {
			return fmt.Errorf("failed to verify backup code: %w", err)
		}
		if !match {
			continue
		}
		if err := a.backupCodes.Consume(ctx, candidate.ID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.ErrInvalidTwoFactorCode
			}
			return fmt.Errorf("failed to consume backup code: %w", err)
		}
		return nil
	}

	return model.ErrInvalidTwoFactorCode
}

type accountSeed struct {
	PersonID      uuid.UUID
	FirstName     string
	LastName      string
	Address       string
	Verified      bool
	Kind          model.LoginMethodKind
	PasswordHash  string
	OAuthProvider string
	OAuthSubject  string
}

// createAccount provisions the person, email, login method and default
// organization of a new account.
// TODO: wrap the writes in a single transaction.
func (a *Auth) createAccount(ctx context.Context, seed accountSeed) (model.Identity, error) {
	now := a.now()

	personID := seed.PersonID
	if personID == uuid.Nil {
		personID = uuid.New()
	}

	person, err := a.persons.Create(ctx, model.Person{
		ID:        personID,
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create person",
			"email", seed.Address,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to create person: %w", err)
	}

	email, err := a.emails.Create(ctx, model.Email{
		ID:         uuid.New(),
		PersonID:   person.ID,
		Address:    seed.Address,
		IsVerified: seed.Verified,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create email",
			"email", seed.Address,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to create email: %w", err)
	}

	method, err := a.loginMethods.Create(ctx, model.LoginMethod{
		ID:            uuid.New(),
		EmailID:       email.ID,
		PersonID:      person.ID,
		Kind:          seed.Kind,
		PasswordHash:  seed.PasswordHash,
		OAuthProvider: seed.OAuthProvider,
		OAuthSubject:  seed.OAuthSubject,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create login method",
			"email", seed.Address,
			"error", err.Error())
		return model.Identity{}, fmt.Errorf("failed to create login method: %w", err)
	}

	org, err := a.orgs.Create(ctx, model.Organization{
		ID:        uuid.New(),
		Name:      a.conf.DefaultOrganizationName,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to create default organization: %w", err)
	}

	_, err = a.orgRoles.Create(ctx, model.PersonOrganizationRole{
		ID:             uuid.New(),
		PersonID:       person.ID,
		OrganizationID: org.ID,
		Role:           model.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to create organization role: %w", err)
	}

	return model.Identity{Person: person, Email: email, LoginMethod: method}, nil
}

func (a *Auth) issueSession(identity model.Identity) (model.Session, error) {
	accessToken, expiresAt, err := a.tokens.IssueAccessToken(identity)
	if err != nil {
		a.logger.Error("Auth service: failed to issue access token",
			"person_id", identity.Person.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return model.Session{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Person:      identity.Person,
	}, nil
}

func normalizeEmail(address string) (string, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return "", model.NewValidationError("email is required")
	}
	if len(address) > model.MaxEmailAddressLength {
		return "", model.NewValidationError("email is too long")
	}
	if !emailPattern.MatchString(address) {
		return "", model.NewValidationError("email is not a valid address")
	}
	return address, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
