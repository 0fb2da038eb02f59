package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aretw0/notebox/pkg/core"
)

// JWTAuthenticator validates HS256 bearer tokens and uses the "sub" claim as the principal.
type JWTAuthenticator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTAuthenticator creates a JWTAuthenticator. An empty issuer disables the issuer check.
func NewJWTAuthenticator(secret, issuer string) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret cannot be empty")
	}
	return &JWTAuthenticator{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// Authenticate implements Authenticator.
func (a *JWTAuthenticator) Authenticate(r *http.Request) (core.Principal, error) {
	raw := bearerToken(r)
	if raw == "" {
		return "", ErrNoCredentials
	}
	return a.Verify(raw)
}

// Verify parses raw and returns the principal it was issued for.
func (a *JWTAuthenticator) Verify(raw string) (core.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return core.Principal(claims.Subject), nil
}

// IssueToken mints a token for p. A zero ttl produces a token without expiry.
func (a *JWTAuthenticator) IssueToken(p core.Principal, ttl time.Duration) (string, error) {
	if p == "" {
		return "", errors.New("principal cannot be empty")
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:  string(p),
		Issuer:   a.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}
