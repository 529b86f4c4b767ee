package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hypertask-mcp/internal/config"
	"hypertask-mcp/internal/mcpconst"

	"github.com/stretchr/testify/require"
)

const pingMethod mcpconst.JsonRpcMethod = "ping"

// recordedRequest is what the fake server saw for one POST.
type recordedRequest struct {
	ID     uint64          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Header http.Header     `json:"-"`
}

// reply is what the fake server sends back for one POST.
type reply struct {
	sessionID   string
	contentType string
	body        string
}

func jsonReply(body string) reply {
	return reply{contentType: "application/json", body: body}
}

func sseReply(body string) reply {
	return reply{contentType: "text/event-stream", body: "event: message\ndata: " + body + "\n\n"}
}

func okReply(id int) reply {
	return jsonReply(fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"result":{}}`, id))
}

// fakeServer records every request and answers with respond(n, req), n counting from 1.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	respond  func(n int, req recordedRequest) reply
}

func newFakeServer(t *testing.T, respond func(n int, req recordedRequest) reply) *fakeServer {
	fs := &fakeServer{respond: respond}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	var req recordedRequest
	_ = json.Unmarshal(body, &req)
	req.Header = r.Header.Clone()

	fs.mu.Lock()
	fs.requests = append(fs.requests, req)
	n := len(fs.requests)
	fs.mu.Unlock()

	rep := fs.respond(n, req)
	if rep.sessionID != "" {
		w.Header().Set("Mcp-Session-Id", rep.sessionID)
	}
	if rep.contentType != "" {
		w.Header().Set("Content-Type", rep.contentType)
	}
	fmt.Fprint(w, rep.body)
}

func (fs *fakeServer) Requests() []recordedRequest {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]recordedRequest(nil), fs.requests...)
}

func (fs *fakeServer) Methods() []string {
	var methods []string
	for _, r := range fs.Requests() {
		methods = append(methods, r.Method)
	}
	return methods
}

func (fs *fakeServer) IDs() []uint64 {
	var ids []uint64
	for _, r := range fs.Requests() {
		ids = append(ids, r.ID)
	}
	return ids
}

func testConfig(url string) config.Config {
	return config.Config{URL: url, Token: "test-token", Timeout: 2 * time.Second}
}

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	c, err := New(testConfig(url), opts...)
	require.NoError(t, err)
	return c
}
