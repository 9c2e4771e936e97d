// Package authsvc is the OAuth2 token service (C8): client_credentials
// and refresh_token grant issuance, bearer verification middleware,
// and a background sweeper that purges expired tokens.
package authsvc

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"
)

// Store is the persistence contract the token service needs. It is
// satisfied by *internal/tokenstore.Store; defining it here lets
// tests substitute an in-process fake.
type Store interface {
	Save(ctx context.Context, token, clientID string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*StoredToken, error)
	Delete(ctx context.Context, token string) error
	SaveRefresh(ctx context.Context, token, clientID string, expiresAt time.Time) error
	GetRefresh(ctx context.Context, token string) (*StoredToken, error)
	DeleteRefresh(ctx context.Context, token string) error
	Cleanup(ctx context.Context) error
}

// StoredToken mirrors tokenstore.Token so this package doesn't import
// tokenstore's concrete type in its public contract.
type StoredToken struct {
	ClientID  string
	ExpiresAt time.Time
}

// TokenResponse is the JSON body returned by a successful grant (spec
// §4.8).
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// Service issues and verifies bearer tokens against the configured
// client credentials and a persistent Store.
type Service struct {
	store           Store
	clientID        string
	clientSecret    string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewService constructs a Service bound to a single configured
// client_id/client_secret pair (spec §4.8 validates against
// "configured constants", not a client registry).
func NewService(store Store, clientID, clientSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		store:           store,
		clientID:        clientID,
		clientSecret:    clientSecret,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// IssueClientCredentials implements the client_credentials grant.
func (s *Service) IssueClientCredentials(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	if !s.validClient(clientID, clientSecret) {
		return nil, ErrInvalidClient
	}

	accessToken, err := randomHexToken()
	if err != nil {
		return nil, err
	}
	refreshToken, err := randomHexToken()
	if err != nil {
		return nil, err
	}

	now := clock()
	if err := s.store.Save(ctx, accessToken, clientID, now.Add(s.accessTokenTTL)); err != nil {
		return nil, err
	}
	if err := s.store.SaveRefresh(ctx, refreshToken, clientID, now.Add(s.refreshTokenTTL)); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

// RefreshAccessToken implements the refresh_token grant: the same
// refresh token is kept, a new access token is issued against it.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRequest
	}

	stored, err := s.store.GetRefresh(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidGrant
	}

	now := clock()
	if stored.ExpiresAt.Before(now) {
		_ = s.store.DeleteRefresh(ctx, refreshToken)
		return nil, ErrInvalidGrant
	}

	accessToken, err := randomHexToken()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, accessToken, stored.ClientID, now.Add(s.accessTokenTTL)); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
		RefreshToken: refreshToken,
	}, nil
}

// Verify looks up an access token, rejecting it with ErrUnauthorized
// when missing or expired (spec §4.8 middleware contract). A hit
// returns the client ID that was granted the token.
func (s *Service) Verify(ctx context.Context, accessToken string) (string, error) {
	stored, err := s.store.Get(ctx, accessToken)
	if err != nil {
		return "", ErrUnauthorized
	}
	if stored.ExpiresAt.Before(clock()) {
		_ = s.store.Delete(ctx, accessToken)
		return "", ErrUnauthorized
	}
	return stored.ClientID, nil
}

func (s *Service) validClient(clientID, clientSecret string) bool {
	idMatch := subtle.ConstantTimeCompare([]byte(clientID), []byte(s.clientID)) == 1
	secretMatch := subtle.ConstantTimeCompare([]byte(clientSecret), []byte(s.clientSecret)) == 1
	return idMatch && secretMatch
}

func randomHexToken() (string, error) {
	buf := make([]byte, 32) // 256 bits
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// clock is a seam for deterministic tests; production always uses
// time.Now.
var clock = time.Now
