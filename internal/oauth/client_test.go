package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProviderServer(t *testing.T, tokenStatus int, profile any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))

		w.WriteHeader(tokenStatus)
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "provider-token", "token_type": "Bearer"})
	})
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(profile)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Exchange_Google(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, map[string]string{
		"sub":         "google-sub-1",
		"email":       "ada@example.com",
		"given_name":  "Ada",
		"family_name": "Lovelace",
	})

	c := NewClient("id", "secret", "", "")
	c.SetProvider(ProviderGoogle, ProviderConfig{
		ClientID: "id", ClientSecret: "secret",
		TokenURL: srv.URL + "/token", ProfileURL: srv.URL + "/profile",
	})

	profile, err := c.Exchange(context.Background(), ProviderGoogle, "the-code", "https://app/callback", "")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, profile.Provider)
	assert.Equal(t, "google-sub-1", profile.Subject)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "Lovelace", profile.LastName)
}

func TestClient_Exchange_Microsoft_PrincipalNameFallback(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, map[string]string{
		"id":                "ms-sub-1",
		"userPrincipalName": "ada@contoso.com",
		"displayName":       "Ada Lovelace Byron",
	})

	c := NewClient("", "", "id", "secret")
	c.SetProvider(ProviderMicrosoft, ProviderConfig{
		ClientID: "id", ClientSecret: "secret",
		TokenURL: srv.URL + "/token", ProfileURL: srv.URL + "/profile",
	})

	profile, err := c.Exchange(context.Background(), ProviderMicrosoft, "the-code", "https://app/callback", "verifier")
	require.NoError(t, err)
	assert.Equal(t, "ms-sub-1", profile.Subject)
	assert.Equal(t, "ada@contoso.com", profile.Email)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "Lovelace Byron", profile.LastName)
}

func TestClient_Exchange_TokenEndpointError(t *testing.T) {
	srv := newProviderServer(t, http.StatusBadRequest, nil)

	c := NewClient("id", "secret", "", "")
	c.SetProvider(ProviderGoogle, ProviderConfig{
		TokenURL: srv.URL + "/token", ProfileURL: srv.URL + "/profile",
	})

	_, err := c.Exchange(context.Background(), ProviderGoogle, "the-code", "https://app/callback", "")
	require.Error(t, err)
}

func TestClient_Exchange_UnknownProvider(t *testing.T) {
	c := NewClient("", "", "", "")

	_, err := c.Exchange(context.Background(), "github", "code", "uri", "")
	require.Error(t, err)
}

func TestClient_Exchange_ProfileMissingEmail(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, map[string]string{"sub": "google-sub-1"})

	c := NewClient("id", "secret", "", "")
	c.SetProvider(ProviderGoogle, ProviderConfig{
		TokenURL: srv.URL + "/token", ProfileURL: srv.URL + "/profile",
	})

	_, err := c.Exchange(context.Background(), ProviderGoogle, "the-code", "https://app/callback", "")
	require.Error(t, err)
}
