package authsvc

import "errors"

// ErrUnauthorized is returned by middleware verification on a
// missing, unknown, or expired bearer token.
var ErrUnauthorized = errors.New("authsvc: unauthorized")

// OAuthError carries one of the RFC 6749 error slugs the token
// endpoint responds with (spec §4.8): unsupported_grant_type,
// invalid_client, invalid_request, invalid_grant.
type OAuthError struct {
	Slug string
}

func (e *OAuthError) Error() string {
	return e.Slug
}

var (
	ErrUnsupportedGrantType = &OAuthError{Slug: "unsupported_grant_type"}
	ErrInvalidClient        = &OAuthError{Slug: "invalid_client"}
	ErrInvalidRequest       = &OAuthError{Slug: "invalid_request"}
	ErrInvalidGrant         = &OAuthError{Slug: "invalid_grant"}
)
