package httpapi

import (
	"github.com/aretw0/notebox/pkg/auth"
)

func (s *Server) setupRoutes() {
	s.engine.Use(s.recovery())
	s.engine.Use(requestID())
	s.engine.Use(s.accessLog())
	s.engine.Use(s.cors())

	s.engine.GET("/healthz", s.handleHealth)
	if s.config.ExposeState {
		s.engine.GET("/debug/state", s.handleState)
	}

	v1 := s.engine.Group("/v1")
	v1.GET("/describe", s.handleDescribe)

	authed := v1.Group("", auth.Middleware(s.config.Authenticator, s.config.Logger))
	{
		authed.POST("/notes", s.handleAdd)
		authed.GET("/notes", s.handleList)
		authed.GET("/notes/:index", s.handleGet)
		authed.PUT("/notes/:index", s.handleEdit)
		authed.DELETE("/notes/:index", s.handleDelete)
		authed.GET("/feed", s.handleFeed)
	}
}
