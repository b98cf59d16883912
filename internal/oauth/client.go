// Package oauth exchanges authorization codes with external providers and
// normalizes their profile responses.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/identity-server/internal/model"
)

const (
	// ProviderGoogle identifies Google sign-in.
	ProviderGoogle = "google"
	// ProviderMicrosoft identifies Microsoft sign-in.
	ProviderMicrosoft = "microsoft"
)

var _ model.OAuthBroker = (*Client)(nil)

// ProviderConfig holds the credentials and endpoints of one provider.
// Endpoints are fields so tests can point them at a local server.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	ProfileURL   string
	Scope        string
}

// Client implements OAuthBroker over plain HTTP.
type Client struct {
	http      *http.Client
	providers map[string]ProviderConfig
}

// NewClient creates a broker for the Google and Microsoft providers.
func NewClient(googleID, googleSecret, microsoftID, microsoftSecret string) *Client {
	return &Client{
		http: &http.Client{Timeout: 10 * time.Second},
		providers: map[string]ProviderConfig{
			ProviderGoogle: {
				ClientID:     googleID,
				ClientSecret: googleSecret,
				TokenURL:     "https://oauth2.googleapis.com/token",
				ProfileURL:   "https://openidconnect.googleapis.com/v1/userinfo",
				Scope:        "openid email profile",
			},
			ProviderMicrosoft: {
				ClientID:     microsoftID,
				ClientSecret: microsoftSecret,
				TokenURL:     "https://login.microsoftonline.com/common/oauth2/v2.0/token",
				ProfileURL:   "https://graph.microsoft.com/v1.0/me",
				Scope:        "openid email profile User.Read",
			},
		},
	}
}

// SetProvider overrides a provider configuration. Used in tests.
func (c *Client) SetProvider(name string, conf ProviderConfig) {
	c.providers[name] = conf
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

// Exchange trades an authorization code for an access token, fetches the
// provider profile and normalizes it.
func (c *Client) Exchange(ctx context.Context, provider, code, redirectURI, codeVerifier string) (model.OAuthProfile, error) {
	conf, ok := c.providers[provider]
	if !ok {
		return model.OAuthProfile{}, fmt.Errorf("unknown oauth provider: %s", provider)
	}

	accessToken, err := c.exchangeCode(ctx, conf, code, redirectURI, codeVerifier)
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to exchange code with %s: %w", provider, err)
	}

	profile, err := c.fetchProfile(ctx, provider, conf, accessToken)
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to fetch %s profile: %w", provider, err)
	}

	return profile, nil
}

func (c *Client) exchangeCode(ctx context.Context, conf ProviderConfig, code, redirectURI, codeVerifier string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", conf.ClientID)
	form.Set("client_secret", conf.ClientSecret)
	form.Set("redirect_uri", redirectURI)
	form.Set("scope", conf.Scope)
	if codeVerifier != "" {
		form.Set("code_verifier", codeVerifier)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, conf.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response has no access token")
	}

	return token.AccessToken, nil
}

func (c *Client) fetchProfile(ctx context.Context, provider string, conf ProviderConfig, accessToken string) (model.OAuthProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, conf.ProfileURL, nil)
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("profile request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to read profile response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.OAuthProfile{}, fmt.Errorf("profile endpoint returned %d", resp.StatusCode)
	}

	switch provider {
	case ProviderMicrosoft:
		return normalizeMicrosoft(body)
	default:
		return normalizeGoogle(body)
	}
}

func normalizeGoogle(body []byte) (model.OAuthProfile, error) {
	var raw struct {
		Sub        string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Name       string `json:"name"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to decode google profile: %w", err)
	}
	if raw.Sub == "" || raw.Email == "" {
		return model.OAuthProfile{}, fmt.Errorf("google profile is missing subject or email")
	}

	first, last := raw.GivenName, raw.FamilyName
	if first == "" {
		first, last = splitName(raw.Name)
	}

	return model.OAuthProfile{
		Provider:  ProviderGoogle,
		Subject:   raw.Sub,
		Email:     raw.Email,
		FirstName: first,
		LastName:  last,
	}, nil
}

func normalizeMicrosoft(body []byte) (model.OAuthProfile, error) {
	var raw struct {
		ID                string `json:"id"`
		Mail              string `json:"mail"`
		UserPrincipalName string `json:"userPrincipalName"`
		GivenName         string `json:"givenName"`
		Surname           string `json:"surname"`
		DisplayName       string `json:"displayName"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.OAuthProfile{}, fmt.Errorf("failed to decode microsoft profile: %w", err)
	}

	// work/school accounts may leave mail empty
	email := raw.Mail
	if email == "" {
		email = raw.UserPrincipalName
	}
	if raw.ID == "" || email == "" {
		return model.OAuthProfile{}, fmt.Errorf("microsoft profile is missing subject or email")
	}

	first, last := raw.GivenName, raw.Surname
	if first == "" {
		first, last = splitName(raw.DisplayName)
	}

	return model.OAuthProfile{
		Provider:  ProviderMicrosoft,
		Subject:   raw.ID,
		Email:     email,
		FirstName: first,
		LastName:  last,
	}, nil
}

// splitName breaks a display name on the first space.
func splitName(name string) (string, string) {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return first, ""
	}
	return first, last
}
