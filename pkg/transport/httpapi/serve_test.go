package httpapi

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestServer(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(l) }()

	client := &http.Client{Timeout: 2 * time.Second}
	defer client.CloseIdleConnections()

	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + l.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var body map[string]string
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode == http.StatusOK && body["status"] == "ok"
	}, 2*time.Second, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-errCh)

	assert.Error(t, s.Serve(l), "a server cannot be started twice")
}
