// Package auth resolves the calling Principal from an incoming request.
//
// The note store never constructs principals itself: every request passes
// through an Authenticator, and handlers read the result with PrincipalFrom.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aretw0/notebox/pkg/core"
)

// DefaultHeader is the header read by HeaderAuthenticator when none is configured.
const DefaultHeader = "X-Principal"

// Common errors.
var (
	ErrNoCredentials = errors.New("no credentials supplied")
	ErrInvalidToken  = errors.New("invalid token")
)

// Authenticator resolves the Principal behind a request.
type Authenticator interface {
	Authenticate(r *http.Request) (core.Principal, error)
}

// HeaderAuthenticator trusts a principal supplied verbatim in a request header.
// It is meant for deployments behind an authenticating proxy and for local use.
type HeaderAuthenticator struct {
	Header string
}

// Authenticate implements Authenticator.
func (h HeaderAuthenticator) Authenticate(r *http.Request) (core.Principal, error) {
	name := h.Header
	if name == "" {
		name = DefaultHeader
	}
	v := r.Header.Get(name)
	if v == "" {
		return "", ErrNoCredentials
	}
	return core.Principal(v), nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
