package application

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

// Google OAuth endpoints.
const (
	GoogleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	GoogleTokenURL = "https://oauth2.googleapis.com/token"
)

// ErrNoIDToken is returned when the token response carries no id_token.
var ErrNoIDToken = errors.New("google did not return an id_token")

// GoogleAuthenticator runs the auth-code flow and yields the ID token the
// backend accepts at /users/login/google.
type GoogleAuthenticator struct {
	config *oauth2.Config
}

// NewGoogleAuthenticator creates an authenticator. Empty URLs use Google's
// endpoints.
func NewGoogleAuthenticator(clientID, clientSecret, redirectURL, authURL, tokenURL string) (*GoogleAuthenticator, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google sign-in is not configured")
	}
	if authURL == "" {
		authURL = GoogleAuthURL
	}
	if tokenURL == "" {
		tokenURL = GoogleTokenURL
	}
	return &GoogleAuthenticator{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
			RedirectURL: redirectURL,
			Scopes:      []string{"openid", "email", "profile"},
		},
	}, nil
}

// AuthURL returns the consent page URL.
func (g *GoogleAuthenticator) AuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the ID token.
func (g *GoogleAuthenticator) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange google code: %w", err)
	}
	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", ErrNoIDToken
	}
	return idToken, nil
}
