package examplemcp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Flavors of example server, by response encoding.
const (
	FlavorJSON = "json"
	FlavorSSE  = "sse"
)

// NewHandler builds the example server for flavor. path only applies to the JSON
// flavor; the SSE handler answers on every path.
func NewHandler(flavor, serverName, path string) (http.Handler, error) {
	switch flavor {
	case FlavorJSON:
		return NewJSONServer(serverName, path), nil
	case FlavorSSE:
		return NewSSEServer(serverName), nil
	}
	return nil, fmt.Errorf("unknown example server flavor %q (want %s or %s)", flavor, FlavorJSON, FlavorSSE)
}

// RunServerAsync serves handler on port (0 picks a free one) and returns the
// listener plus a func that shuts the server down gracefully.
func RunServerAsync(handler http.Handler, port int, logger zerolog.Logger) (net.Listener, context.CancelFunc, error) {

	noopCancelFunc := func() {}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, noopCancelFunc, fmt.Errorf("net.Listen() failed: %w", err)
	}

	server := &http.Server{
		Handler: handler,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("example server stopped")
		}
	}()

	// This listens for the ctx cancel() func, then triggers graceful shutdown
	go func() {
		defer close(done)
		<-ctx.Done()
		logger.Debug().Str("addr", listener.Addr().String()).Msg("shutting down example server")

		// setup a context to limit graceful shutdown to at most 5s
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	return listener, func() { cancel(); <-done }, nil
}
