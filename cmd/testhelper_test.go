package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hypertask-mcp/internal/config"
	"hypertask-mcp/internal/examplemcp"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// fakeEnv replaces getenv with a lookup into env for the duration of the test.
func fakeEnv(t *testing.T, env map[string]string) {
	prev := getenv
	getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { getenv = prev })
}

func tokenEnv(t *testing.T) {
	fakeEnv(t, map[string]string{config.EnvToken: "test-token"})
}

// countingServer serves the JSON example server at /mcp and counts the POSTs it sees.
type countingServer struct {
	*httptest.Server
	posts atomic.Int32
}

func newExampleServer(t *testing.T) *countingServer {
	cs := &countingServer{}
	mcpHandler := examplemcp.NewJSONServer(t.Name(), "/mcp")
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			cs.posts.Add(1)
		}
		mcpHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *countingServer) mcpURL() string {
	return cs.URL + "/mcp"
}

// runSubCommand runs a long-lived command, cancels it after wait and checks
// what it printed.
func runSubCommand(t *testing.T, cmd *cobra.Command, wait time.Duration, outputAssertions []string, args ...string) {

	cancelableCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		wg     sync.WaitGroup
		stdout string
		err    error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		cmd.SetContext(cancelableCtx)
		stdout, _, err = CommandRunner(cmd, args...)
	}()

	// we need to wait for the command to start ...
	time.Sleep(wait)
	// ... then cancel it
	cancel()
	wg.Wait()

	assert.NoError(t, err)
	for _, oa := range outputAssertions {
		assert.Contains(t, strings.ToLower(stdout), strings.ToLower(oa))
	}
}
