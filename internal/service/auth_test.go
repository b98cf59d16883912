package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/identity-server/internal/mocks"
	"github.com/dtroode/identity-server/internal/model"
	. "github.com/dtroode/identity-server/internal/service"
	"github.com/dtroode/identity-server/internal/testutil"
)

type authMocks struct {
	persons  *mocks.PersonStore
	emails   *mocks.EmailStore
	methods  *mocks.LoginMethodStore
	backup   *mocks.BackupCodeStore
	pending  *mocks.PendingTwoFactorSetupStore
	orgs     *mocks.OrganizationStore
	roles    *mocks.PersonOrganizationRoleStore
	tokens   *mocks.TokenCodec
	totp     *mocks.TOTPEngine
	hasher   *mocks.PasswordHasher
	notifier *mocks.Notifier
	oauth    *mocks.OAuthBroker
}

func newTestAuth(t *testing.T) (*Auth, *authMocks) {
	t.Helper()
	m := &authMocks{
		persons:  &mocks.PersonStore{},
		emails:   &mocks.EmailStore{},
		methods:  &mocks.LoginMethodStore{},
		backup:   &mocks.BackupCodeStore{},
		pending:  &mocks.PendingTwoFactorSetupStore{},
		orgs:     &mocks.OrganizationStore{},
		roles:    &mocks.PersonOrganizationRoleStore{},
		tokens:   &mocks.TokenCodec{},
		totp:     &mocks.TOTPEngine{},
		hasher:   &mocks.PasswordHasher{},
		notifier: &mocks.Notifier{},
		oauth:    &mocks.OAuthBroker{},
	}

	a := NewAuth(AuthDeps{
		Persons:           m.persons,
		Emails:            m.emails,
		LoginMethods:      m.methods,
		BackupCodes:       m.backup,
		PendingSetups:     m.pending,
		Organizations:     m.orgs,
		OrganizationRoles: m.roles,
		Tokens:            m.tokens,
		TOTP:              m.totp,
		Hasher:            m.hasher,
		Notifier:          m.notifier,
		OAuth:             m.oauth,
		Logger:            testutil.MakeNoopLogger(),
		Config: AuthConfig{
			ReplayProtection:        true,
			BackupCodeCount:         10,
			ResetURLBase:            "https://app.example.com/reset-password",
			DefaultOrganizationName: "Personal",
		},
	})

	return a, m
}

func expectAccountCreation(m *authMocks) {
	m.persons.On("Create", mock.Anything, mock.AnythingOfType("model.Person")).
		Return(model.Person{ID: uuid.New(), FirstName: "Ada", LastName: "Lovelace"}, nil)
	m.emails.On("Create", mock.Anything, mock.AnythingOfType("model.Email")).
		Return(model.Email{ID: uuid.New(), Address: "ada@example.com"}, nil)
	m.methods.On("Create", mock.Anything, mock.AnythingOfType("model.LoginMethod")).
		Return(model.LoginMethod{ID: uuid.New(), Kind: model.KindPassword}, nil)
	m.orgs.On("Create", mock.Anything, mock.AnythingOfType("model.Organization")).
		Return(model.Organization{ID: uuid.New(), Name: "Personal"}, nil)
	m.roles.On("Create", mock.Anything, mock.AnythingOfType("model.PersonOrganizationRole")).
		Return(model.PersonOrganizationRole{ID: uuid.New(), Role: model.RoleAdmin}, nil)
}

func TestAuth_Signup(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{}, model.ErrNotFound)
	m.hasher.On("Hash", "CorrectHorse1!").Return("encoded-hash", nil)
	expectAccountCreation(m)
	m.notifier.On("SendWelcome", mock.Anything, "ada@example.com", "Ada").Return(nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.Signup(ctx, SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     " Ada@Example.com ",
		Password:  "CorrectHorse1!",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, "Ada", session.Person.FirstName)

	// address is trimmed and lowercased before any lookup
	m.emails.AssertCalled(t, "GetByAddress", mock.Anything, "ada@example.com")
	m.methods.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(lm model.LoginMethod) bool {
		return lm.Kind == model.KindPassword && lm.PasswordHash == "encoded-hash"
	}))
}

func TestAuth_Signup_EmailTaken(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()
	emailID := uuid.New()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{ID: emailID, Address: "ada@example.com"}, nil)
	m.methods.On("GetByEmailID", mock.Anything, emailID).
		Return(model.LoginMethod{ID: uuid.New(), Kind: model.KindPassword}, nil)

	_, err := a.Signup(ctx, SignupRequest{FirstName: "Ada", Email: "ada@example.com", Password: "CorrectHorse1!"})
	require.ErrorIs(t, err, model.ErrAlreadyRegistered)
	m.persons.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_Signup_EmailTakenViaOAuth(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()
	emailID := uuid.New()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{ID: emailID}, nil)
	m.methods.On("GetByEmailID", mock.Anything, emailID).
		Return(model.LoginMethod{Kind: model.KindOAuth, OAuthProvider: "google"}, nil)

	_, err := a.Signup(ctx, SignupRequest{FirstName: "Ada", Email: "ada@example.com", Password: "CorrectHorse1!"})

	var oauthErr *model.AlreadyRegisteredViaOAuthError
	require.ErrorAs(t, err, &oauthErr)
	assert.Equal(t, "google", oauthErr.Provider)
}

func TestAuth_Signup_InvalidInput(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{name: "empty email", req: SignupRequest{FirstName: "Ada", Password: "CorrectHorse1!"}},
		{name: "malformed email", req: SignupRequest{FirstName: "Ada", Email: "not-an-email", Password: "CorrectHorse1!"}},
		{name: "overlong email", req: SignupRequest{FirstName: "Ada", Email: strings.Repeat("a", 250) + "@example.com", Password: "CorrectHorse1!"}},
		{name: "missing first name", req: SignupRequest{Email: "ada@example.com", Password: "CorrectHorse1!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Signup(ctx, tt.req)
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	m.emails.AssertNotCalled(t, "GetByAddress", mock.Anything, mock.Anything)
}

func TestAuth_Signup_PasswordPolicy(t *testing.T) {
	a, _ := newTestAuth(t)
	a.SetPasswordValidator(func(string) error {
		return model.NewValidationError("password must contain a digit")
	})

	_, err := a.Signup(context.Background(), SignupRequest{
		FirstName: "Ada",
		Email:     "ada@example.com",
		Password:  "weak",
	})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAuth_Signup_WelcomeEmailFailureIsNotFatal(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{}, model.ErrNotFound)
	m.hasher.On("Hash", "CorrectHorse1!").Return("encoded-hash", nil)
	expectAccountCreation(m)
	m.notifier.On("SendWelcome", mock.Anything, "ada@example.com", "Ada").
		Return(assert.AnError)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.Signup(ctx, SignupRequest{FirstName: "Ada", Email: "ada@example.com", Password: "CorrectHorse1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

func passwordAccount(m *authMocks, twoFactor bool) (model.Email, model.LoginMethod, model.Person) {
	email := model.Email{ID: uuid.New(), PersonID: uuid.New(), Address: "ada@example.com"}
	method := model.LoginMethod{
		ID:           uuid.New(),
		EmailID:      email.ID,
		PersonID:     email.PersonID,
		Kind:         model.KindPassword,
		PasswordHash: "encoded-hash",
	}
	if twoFactor {
		method.TwoFactorEnabled = true
		method.TwoFactorSecret = "SECRET"
	}
	person := model.Person{ID: email.PersonID, FirstName: "Ada"}

	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(method, nil)

	return email, method, person
}

func TestAuth_LoginByPassword(t *testing.T) {
	a, m := newTestAuth(t)
	ctx := context.Background()
	_, method, person := passwordAccount(m, false)

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	m.persons.On("GetByID", mock.Anything, method.PersonID).Return(person, nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.LoginByPassword(ctx, LoginRequest{Email: "ada@example.com", Password: "CorrectHorse1!"})
	require.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
	assert.Equal(t, person.ID, session.Person.ID)
}

func TestAuth_LoginByPassword_NotRegistered(t *testing.T) {
	a, m := newTestAuth(t)

	m.emails.On("GetByAddress", mock.Anything, "ghost@example.com").
		Return(model.Email{}, model.ErrNotFound)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "x"})
	require.ErrorIs(t, err, model.ErrNotRegistered)
}

func TestAuth_LoginByPassword_OAuthAccount(t *testing.T) {
	a, m := newTestAuth(t)
	emailID := uuid.New()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{ID: emailID}, nil)
	m.methods.On("GetByEmailID", mock.Anything, emailID).
		Return(model.LoginMethod{Kind: model.KindOAuth, OAuthProvider: "microsoft"}, nil)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{Email: "ada@example.com", Password: "x"})

	var wrongMethod *model.WrongLoginMethodError
	require.ErrorAs(t, err, &wrongMethod)
	assert.Equal(t, "microsoft", wrongMethod.Provider)
}

func TestAuth_LoginByPassword_WrongPassword(t *testing.T) {
	a, m := newTestAuth(t)
	passwordAccount(m, false)

	m.hasher.On("Verify", "wrong", "encoded-hash").Return(false, nil)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_LoginByPassword_TwoFactorRequired(t *testing.T) {
	a, m := newTestAuth(t)
	passwordAccount(m, true)

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{Email: "ada@example.com", Password: "CorrectHorse1!"})
	require.ErrorIs(t, err, model.ErrTwoFactorRequired)
}

func TestAuth_LoginByPassword_WithTOTPCode(t *testing.T) {
	a, m := newTestAuth(t)
	_, method, person := passwordAccount(m, true)

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	m.totp.On("VerifyCode", "SECRET", "123456", mock.AnythingOfType("time.Time")).
		Return(true, int64(100))
	m.methods.On("UpdateTOTPCounter", mock.Anything, method.ID, int64(100)).Return(nil)
	m.persons.On("GetByID", mock.Anything, method.PersonID).Return(person, nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.LoginByPassword(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "CorrectHorse1!", TwoFactorCode: "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	m.methods.AssertCalled(t, "UpdateTOTPCounter", mock.Anything, method.ID, int64(100))
}

func TestAuth_LoginByPassword_ReplayedTOTPCode(t *testing.T) {
	a, m := newTestAuth(t)
	email := model.Email{ID: uuid.New(), PersonID: uuid.New(), Address: "ada@example.com"}
	method := model.LoginMethod{
		ID: uuid.New(), EmailID: email.ID, PersonID: email.PersonID,
		Kind: model.KindPassword, PasswordHash: "encoded-hash",
		TwoFactorEnabled: true, TwoFactorSecret: "SECRET",
		LastTOTPCounter: 100,
	}
	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(method, nil)
	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	// same counter as the last accepted code
	m.totp.On("VerifyCode", "SECRET", "123456", mock.AnythingOfType("time.Time")).
		Return(true, int64(100))

	_, err := a.LoginByPassword(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "CorrectHorse1!", TwoFactorCode: "123456",
	})
	require.ErrorIs(t, err, model.ErrInvalidTwoFactorCode)
	m.methods.AssertNotCalled(t, "UpdateTOTPCounter", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_LoginByPassword_WithBackupCode(t *testing.T) {
	a, m := newTestAuth(t)
	_, method, person := passwordAccount(m, true)
	codeID := uuid.New()

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	m.totp.On("VerifyCode", "SECRET", "ABCD2345", mock.AnythingOfType("time.Time")).
		Return(false, int64(0))
	m.backup.On("ListUnused", mock.Anything, method.ID).Return([]model.BackupCode{
		{ID: uuid.New(), Hash: "hash-1"},
		{ID: codeID, Hash: "hash-2"},
	}, nil)
	m.hasher.On("Verify", "ABCD2345", "hash-1").Return(false, nil)
	m.hasher.On("Verify", "ABCD2345", "hash-2").Return(true, nil)
	m.backup.On("Consume", mock.Anything, codeID).Return(nil)
	m.persons.On("GetByID", mock.Anything, method.PersonID).Return(person, nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "CorrectHorse1!", TwoFactorCode: "ABCD2345",
	})
	require.NoError(t, err)
	m.backup.AssertCalled(t, "Consume", mock.Anything, codeID)
}

func TestAuth_LoginByPassword_BackupCodeAlreadyConsumed(t *testing.T) {
	a, m := newTestAuth(t)
	_, method, _ := passwordAccount(m, true)
	codeID := uuid.New()

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	m.totp.On("VerifyCode", "SECRET", "ABCD2345", mock.AnythingOfType("time.Time")).
		Return(false, int64(0))
	m.backup.On("ListUnused", mock.Anything, method.ID).Return([]model.BackupCode{
		{ID: codeID, Hash: "hash-1"},
	}, nil)
	m.hasher.On("Verify", "ABCD2345", "hash-1").Return(true, nil)
	// a concurrent login consumed the code first
	m.backup.On("Consume", mock.Anything, codeID).Return(model.ErrNotFound)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "CorrectHorse1!", TwoFactorCode: "ABCD2345",
	})
	require.ErrorIs(t, err, model.ErrInvalidTwoFactorCode)
}

func TestAuth_LoginByPassword_InvalidSecondFactor(t *testing.T) {
	a, m := newTestAuth(t)
	_, method, _ := passwordAccount(m, true)

	m.hasher.On("Verify", "CorrectHorse1!", "encoded-hash").Return(true, nil)
	m.totp.On("VerifyCode", "SECRET", "000000", mock.AnythingOfType("time.Time")).
		Return(false, int64(0))
	m.backup.On("ListUnused", mock.Anything, method.ID).Return(nil, nil)

	_, err := a.LoginByPassword(context.Background(), LoginRequest{
		Email: "ada@example.com", Password: "CorrectHorse1!", TwoFactorCode: "000000",
	})
	require.ErrorIs(t, err, model.ErrInvalidTwoFactorCode)
}

func TestAuth_LoginByOAuthProfile_NewAccount(t *testing.T) {
	a, m := newTestAuth(t)

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{}, model.ErrNotFound)
	expectAccountCreation(m)
	m.notifier.On("SendWelcome", mock.Anything, "ada@example.com", mock.AnythingOfType("string")).Return(nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.LoginByOAuthProfile(context.Background(), model.OAuthProfile{
		Provider: "google", Subject: "sub-1", Email: "Ada@Example.com",
		FirstName: "Ada", LastName: "Lovelace",
	}, OAuthLoginRequest{Provider: "google"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)

	// a provider-asserted email is created already verified
	m.emails.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(e model.Email) bool {
		return e.IsVerified && e.Address == "ada@example.com"
	}))
	m.methods.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(lm model.LoginMethod) bool {
		return lm.Kind == model.KindOAuth && lm.OAuthProvider == "google" && lm.OAuthSubject == "sub-1"
	}))
}

func TestAuth_LoginByOAuthProfile_ConvertsPasswordAccount(t *testing.T) {
	a, m := newTestAuth(t)
	email := model.Email{ID: uuid.New(), PersonID: uuid.New(), Address: "ada@example.com", IsVerified: true}
	method := model.LoginMethod{
		ID: uuid.New(), EmailID: email.ID, PersonID: email.PersonID,
		Kind: model.KindPassword, PasswordHash: "encoded-hash",
	}
	converted := method
	converted.Kind = model.KindOAuth
	converted.PasswordHash = ""
	converted.OAuthProvider = "google"
	converted.OAuthSubject = "sub-1"

	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(method, nil)
	m.methods.On("ConvertToOAuth", mock.Anything, method.ID, "google", "sub-1").Return(nil)
	m.methods.On("GetByID", mock.Anything, method.ID).Return(converted, nil)
	m.persons.On("GetByID", mock.Anything, email.PersonID).
		Return(model.Person{ID: email.PersonID, FirstName: "Ada"}, nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	_, err := a.LoginByOAuthProfile(context.Background(), model.OAuthProfile{
		Provider: "google", Subject: "sub-1", Email: "ada@example.com", FirstName: "Ada",
	}, OAuthLoginRequest{Provider: "google"})
	require.NoError(t, err)
	m.methods.AssertCalled(t, "ConvertToOAuth", mock.Anything, method.ID, "google", "sub-1")
}

func TestAuth_LoginByOAuthProfile_SubjectMismatch(t *testing.T) {
	a, m := newTestAuth(t)
	email := model.Email{ID: uuid.New(), PersonID: uuid.New(), Address: "ada@example.com", IsVerified: true}

	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(model.LoginMethod{
		Kind: model.KindOAuth, OAuthProvider: "google", OAuthSubject: "other-sub",
	}, nil)

	_, err := a.LoginByOAuthProfile(context.Background(), model.OAuthProfile{
		Provider: "google", Subject: "sub-1", Email: "ada@example.com",
	}, OAuthLoginRequest{Provider: "google"})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_LoginByOAuthProfile_TwoFactorGate(t *testing.T) {
	email := model.Email{ID: uuid.New(), PersonID: uuid.New(), Address: "ada@example.com", IsVerified: true}
	method := model.LoginMethod{
		ID: uuid.New(), EmailID: email.ID, PersonID: email.PersonID,
		Kind: model.KindOAuth, OAuthProvider: "google", OAuthSubject: "sub-1",
		TwoFactorEnabled: true, TwoFactorSecret: "SECRET", LastTOTPCounter: 10,
	}
	profile := model.OAuthProfile{Provider: "google", Subject: "sub-1", Email: "ada@example.com"}

	t.Run("code required", func(t *testing.T) {
		a, m := newTestAuth(t)
		m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
		m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(method, nil)

		_, err := a.LoginByOAuthProfile(context.Background(), profile, OAuthLoginRequest{Provider: "google"})
		require.ErrorIs(t, err, model.ErrTwoFactorRequired)
	})

	t.Run("valid code issues session", func(t *testing.T) {
		a, m := newTestAuth(t)
		m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
		m.methods.On("GetByEmailID", mock.Anything, email.ID).Return(method, nil)
		m.totp.On("VerifyCode", "SECRET", "123456", mock.AnythingOfType("time.Time")).
			Return(true, int64(11))
		m.methods.On("UpdateTOTPCounter", mock.Anything, method.ID, int64(11)).Return(nil)
		m.persons.On("GetByID", mock.Anything, email.PersonID).
			Return(model.Person{ID: email.PersonID, FirstName: "Ada"}, nil)
		m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
			Return("access-token", time.Now().Add(time.Hour), nil)

		session, err := a.LoginByOAuthProfile(context.Background(), profile, OAuthLoginRequest{
			Provider: "google", TwoFactorCode: "123456",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, session.AccessToken)
	})
}

func TestAuth_LoginByOAuthProfile_PersonIDHint(t *testing.T) {
	a, m := newTestAuth(t)
	hint := uuid.New()

	m.emails.On("GetByAddress", mock.Anything, "ada@example.com").
		Return(model.Email{}, model.ErrNotFound)
	expectAccountCreation(m)
	m.notifier.On("SendWelcome", mock.Anything, "ada@example.com", mock.AnythingOfType("string")).Return(nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	_, err := a.LoginByOAuthProfile(context.Background(), model.OAuthProfile{
		Provider: "google", Subject: "sub-1", Email: "ada@example.com", FirstName: "Ada",
	}, OAuthLoginRequest{Provider: "google", PersonIDHint: hint})
	require.NoError(t, err)

	m.persons.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(p model.Person) bool {
		return p.ID == hint
	}))
}

func TestAuth_LoginByOAuth_ExchangeFailure(t *testing.T) {
	a, m := newTestAuth(t)

	m.oauth.On("Exchange", mock.Anything, "google", "bad-code", "https://app/cb", "").
		Return(model.OAuthProfile{}, assert.AnError)

	_, err := a.LoginByOAuth(context.Background(), OAuthLoginRequest{
		Provider: "google", Code: "bad-code", RedirectURI: "https://app/cb",
	})
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_TriggerForgotPasswordEmail(t *testing.T) {
	a, m := newTestAuth(t)
	email := model.Email{ID: uuid.New(), Address: "ada@example.com"}

	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).
		Return(model.LoginMethod{Kind: model.KindPassword}, nil)
	m.tokens.On("IssueResetToken", email.ID).
		Return("reset-token", time.Now().Add(time.Hour), nil)
	m.notifier.On("SendPasswordReset", mock.Anything, email.Address,
		"https://app.example.com/reset-password?token=reset-token").Return(nil)

	err := a.TriggerForgotPasswordEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	m.notifier.AssertExpectations(t)
}

func TestAuth_TriggerForgotPasswordEmail_UnknownAddress(t *testing.T) {
	a, m := newTestAuth(t)

	m.emails.On("GetByAddress", mock.Anything, "ghost@example.com").
		Return(model.Email{}, model.ErrNotFound)

	err := a.TriggerForgotPasswordEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
	m.notifier.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_TriggerForgotPasswordEmail_OAuthAccount(t *testing.T) {
	a, m := newTestAuth(t)
	email := model.Email{ID: uuid.New(), Address: "ada@example.com"}

	m.emails.On("GetByAddress", mock.Anything, email.Address).Return(email, nil)
	m.methods.On("GetByEmailID", mock.Anything, email.ID).
		Return(model.LoginMethod{Kind: model.KindOAuth, OAuthProvider: "google"}, nil)

	err := a.TriggerForgotPasswordEmail(context.Background(), "ada@example.com")

	var wrongMethod *model.WrongLoginMethodError
	require.ErrorAs(t, err, &wrongMethod)
}

func TestAuth_ResetPassword(t *testing.T) {
	a, m := newTestAuth(t)
	personID := uuid.New()
	emailID := uuid.New()
	method := model.LoginMethod{ID: uuid.New(), EmailID: emailID, PersonID: personID, Kind: model.KindPassword}

	m.tokens.On("ParseResetToken", "reset-token").Return(emailID, nil)
	m.methods.On("GetByEmailID", mock.Anything, emailID).Return(method, nil)
	m.hasher.On("Hash", "NewPass1!").Return("new-hash", nil)
	m.methods.On("UpdatePassword", mock.Anything, method.ID, "new-hash").Return(nil)
	m.emails.On("GetByID", mock.Anything, emailID).
		Return(model.Email{ID: emailID, PersonID: personID, Address: "ada@example.com"}, nil)
	m.emails.On("SetVerified", mock.Anything, emailID).Return(nil)
	m.persons.On("GetByID", mock.Anything, personID).
		Return(model.Person{ID: personID, FirstName: "Ada"}, nil)
	m.tokens.On("IssueAccessToken", mock.AnythingOfType("model.Identity")).
		Return("access-token", time.Now().Add(time.Hour), nil)

	session, err := a.ResetPassword(context.Background(), "reset-token", "NewPass1!")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	m.methods.AssertCalled(t, "UpdatePassword", mock.Anything, method.ID, "new-hash")
	// a proven reset-link click verifies the address
	m.emails.AssertCalled(t, "SetVerified", mock.Anything, emailID)
}

func TestAuth_ResetPassword_InvalidToken(t *testing.T) {
	a, m := newTestAuth(t)

	m.tokens.On("ParseResetToken", "garbage").
		Return(uuid.Nil, model.ErrInvalidOrExpiredToken)

	_, err := a.ResetPassword(context.Background(), "garbage", "NewPass1!")
	require.ErrorIs(t, err, model.ErrInvalidOrExpiredToken)
}

func TestAuth_ResetPassword_OAuthAccount(t *testing.T) {
	a, m := newTestAuth(t)
	emailID := uuid.New()

	m.tokens.On("ParseResetToken", "reset-token").Return(emailID, nil)
	m.methods.On("GetByEmailID", mock.Anything, emailID).
		Return(model.LoginMethod{Kind: model.KindOAuth, OAuthProvider: "microsoft"}, nil)

	_, err := a.ResetPassword(context.Background(), "reset-token", "NewPass1!")

	var wrongMethod *model.WrongLoginMethodError
	require.ErrorAs(t, err, &wrongMethod)
}
