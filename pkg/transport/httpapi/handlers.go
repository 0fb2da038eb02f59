package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/core"
	"github.com/aretw0/notebox/pkg/describe"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": s.config.Version,
		"service": s.service.State(),
	})
}

func (s *Server) handleDescribe(c *gin.Context) {
	format, err := describe.ParseFormat(c.DefaultQuery("format", string(describe.FormatJSON)))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)
	if err := describe.Encode(c.Writer, describe.Describe(s.config.Version), format); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) handleAdd(c *gin.Context) {
	p := mustPrincipal(c)
	title, content, ok := bindNote(c)
	if !ok {
		return
	}
	added := s.service.AddNote(c.Request.Context(), p, title, content)
	c.JSON(http.StatusOK, AddResponse{OK: added})
}

func (s *Server) handleList(c *gin.Context) {
	p := mustPrincipal(c)
	c.JSON(http.StatusOK, ListResponse{Notes: s.service.ListNotes(c.Request.Context(), p)})
}

func (s *Server) handleGet(c *gin.Context) {
	p := mustPrincipal(c)
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	n, found := s.service.GetNote(c.Request.Context(), p, index)
	c.JSON(http.StatusOK, noteResponse(n, found))
}

func (s *Server) handleEdit(c *gin.Context) {
	p := mustPrincipal(c)
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	title, content, ok := bindNote(c)
	if !ok {
		return
	}
	n, found := s.service.EditNote(c.Request.Context(), p, index, title, content)
	c.JSON(http.StatusOK, noteResponse(n, found))
}

func (s *Server) handleDelete(c *gin.Context) {
	p := mustPrincipal(c)
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	deleted := s.service.DeleteNote(c.Request.Context(), p, index)
	c.JSON(http.StatusOK, DeleteResponse{Deleted: deleted})
}

// bindNote decodes a NoteRequest and writes a 400 response when the body is
// malformed or a field is missing.
func bindNote(c *gin.Context) (title, content string, ok bool) {
	var req NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		return "", "", false
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid body: %v", err)})
		return "", "", false
	}
	return *req.Title, *req.Content, true
}

// parseIndex decodes the :index path parameter as an unsigned integer and
// writes a 400 response when it is not one.
func parseIndex(c *gin.Context) (uint64, bool) {
	raw := c.Param("index")
	index, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid index %q", raw)})
		return 0, false
	}
	return index, true
}

func noteResponse(n core.Note, found bool) NoteResponse {
	if !found {
		return NoteResponse{}
	}
	return NoteResponse{Note: &n}
}

// mustPrincipal reads the principal set by auth.Middleware. Reaching a
// handler without one means the routes were wired wrong.
func mustPrincipal(c *gin.Context) core.Principal {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		panic("httpapi: handler reached without an authenticated principal")
	}
	return p
}
