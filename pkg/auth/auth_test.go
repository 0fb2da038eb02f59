package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notebox/pkg/core"
)

func TestHeaderAuthenticator(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := HeaderAuthenticator{}.Authenticate(r)
	assert.ErrorIs(t, err, ErrNoCredentials)

	r.Header.Set(DefaultHeader, "alice")
	p, err := HeaderAuthenticator{}.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, core.Principal("alice"), p)

	r.Header.Set("X-User", "bob")
	p, err = HeaderAuthenticator{Header: "X-User"}.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, core.Principal("bob"), p)
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a, err := NewJWTAuthenticator("secret", "notebox")
	require.NoError(t, err)

	token, err := a.IssueToken("alice", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	p, err := a.Authenticate(r)
	require.NoError(t, err)
	assert.Equal(t, core.Principal("alice"), p)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a, err := NewJWTAuthenticator("secret", "notebox")
	require.NoError(t, err)

	other, err := NewJWTAuthenticator("other-secret", "notebox")
	require.NoError(t, err)
	forged, err := other.IssueToken("alice", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := NewJWTAuthenticator("secret", "someone-else")
	require.NoError(t, err)
	foreign, err := wrongIssuer.IssueToken("alice", time.Hour)
	require.NoError(t, err)

	expiredIssuer, err := NewJWTAuthenticator("secret", "notebox")
	require.NoError(t, err)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredIssuer.IssueToken("alice", time.Hour)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": forged,
		"wrong issuer": foreign,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = a.Authenticate(r)
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestNewJWTAuthenticator_EmptySecret(t *testing.T) {
	_, err := NewJWTAuthenticator("", "")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Middleware(HeaderAuthenticator{}, nil))
	engine.GET("/whoami", func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, string(p))
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	r.Header.Set(DefaultHeader, "alice")
	engine.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}
