package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/aretw0/notebox/pkg/core"
)

const feedWriteTimeout = 5 * time.Second

// handleFeed upgrades to a websocket and streams the caller's change events as
// JSON messages until the client disconnects or the server shuts down.
func (s *Server) handleFeed(c *gin.Context) {
	p := mustPrincipal(c)

	if !s.trackFeed() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "server shutting down"})
		return
	}
	defer s.feeds.Done()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	stop := context.AfterFunc(s.base, cancel)
	defer stop()

	events, err := s.service.Watch(ctx, p)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, core.ErrNotWatchable) {
			status = http.StatusNotImplemented
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if !s.origins.empty() {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || s.origins.allowed(origin)
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.config.Logger.WarnContext(ctx, "failed to upgrade feed", "principal", p, "error", err)
		return
	}
	defer conn.Close()

	// The client never sends data; reading only detects disconnects.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.config.Logger.InfoContext(ctx, "feed opened", "principal", p)
	for e := range events {
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteJSON(e); err != nil {
			s.config.Logger.DebugContext(ctx, "feed write failed", "principal", p, "error", err)
			cancel()
			break
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = conn.Close()
	<-readerDone
	s.config.Logger.InfoContext(ctx, "feed closed", "principal", p)
}

// trackFeed registers a feed with the shutdown WaitGroup unless shutdown has begun.
func (s *Server) trackFeed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.base.Err() != nil {
		return false
	}
	s.feeds.Add(1)
	return true
}
