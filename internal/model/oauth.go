package model

import "context"

// OAuthBroker exchanges an authorization code for a provider token and
// fetches a normalized profile. A broker failure aborts the OAuth login
// before any identity write.
type OAuthBroker interface {
	Exchange(ctx context.Context, provider, code, redirectURI, codeVerifier string) (OAuthProfile, error)
}

// OAuthProfile is the normalized identity returned by a provider.
type OAuthProfile struct {
	Provider  string
	Subject   string
	Email     string
	FirstName string
	LastName  string
}
