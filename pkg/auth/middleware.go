package auth

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/notebox/pkg/core"
)

const principalKey = "principal"

// Middleware rejects requests a cannot authenticate and stores the principal
// in the gin context for PrincipalFrom.
func Middleware(a Authenticator, logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(c *gin.Context) {
		p, err := a.Authenticate(c.Request)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "authentication failed",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by Middleware.
func PrincipalFrom(c *gin.Context) (core.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return "", false
	}
	p, ok := v.(core.Principal)
	return p, ok
}
