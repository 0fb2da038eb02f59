package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aretw0/notebox/pkg/auth"
)

const requestIDHeader = "X-Request-ID"

// requestID propagates X-Request-ID, generating one when the client sent none.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString("request_id"),
		}
		if p, ok := auth.PrincipalFrom(c); ok {
			attrs = append(attrs, "principal", p)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.config.Logger.Log(c.Request.Context(), level, "http request", attrs...)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.config.Logger.ErrorContext(c.Request.Context(), "request panic",
			"error", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	})
}

func (s *Server) cors() gin.HandlerFunc {
	allowHeaders := strings.Join([]string{
		"Origin", "Content-Type", "Authorization", requestIDHeader, s.principalHeader(),
	}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && s.origins.allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", allowHeaders)
			c.Header("Access-Control-Max-Age", "86400")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) principalHeader() string {
	if h, ok := s.config.Authenticator.(auth.HeaderAuthenticator); ok && h.Header != "" {
		return h.Header
	}
	return auth.DefaultHeader
}

// originMatcher matches Origin values against doublestar globs.
type originMatcher struct {
	patterns []string
}

func newOriginMatcher(patterns []string) *originMatcher {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "*" || doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return &originMatcher{patterns: valid}
}

func (m *originMatcher) empty() bool {
	return len(m.patterns) == 0
}

func (m *originMatcher) allowed(origin string) bool {
	for _, p := range m.patterns {
		if p == "*" {
			return true
		}
		if ok, _ := doublestar.Match(p, origin); ok {
			return true
		}
	}
	return false
}
