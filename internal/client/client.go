// Package client implements a minimal MCP client over streamable HTTP.
//
// Every top-level operation (CallTool, ListTools) runs the full handshake first:
// initialize, then notifications/initialized, then the operation itself. The
// handshake result is not cached between operations. Requests are issued strictly
// one after the other and nothing is retried.
package client

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"hypertask-mcp/internal/config"
	"hypertask-mcp/internal/jsonrpc"
	"hypertask-mcp/internal/mcpconst"
	"hypertask-mcp/internal/mcperr"
	"hypertask-mcp/internal/transport"

	"github.com/rs/zerolog"
)

// Client talks to a single MCP endpoint. The request-id counter and the session
// id belong to the instance; independent clients never share them.
type Client struct {
	url           string
	token         string
	httpClient    *http.Client
	requester     jsonrpc.NewHttpRequester
	logger        zerolog.Logger
	clientName    string
	clientVersion string

	nextID atomic.Uint64

	mu        sync.Mutex
	sessionID string
}

// Option customises a Client built by New.
type Option func(*Client)

// WithHTTPClient replaces the idle-timeout client built from the config.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for request/response diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClientInfo overrides the clientInfo sent during initialize.
func WithClientInfo(name, version string) Option {
	return func(c *Client) {
		c.clientName = name
		c.clientVersion = version
	}
}

// New validates cfg and builds a client. A missing token fails here, before any
// network activity.
func New(cfg config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		url:           cfg.URL,
		token:         cfg.Token,
		requester:     http.NewRequestWithContext,
		logger:        zerolog.Nop(),
		clientName:    mcpconst.ClientName,
		clientVersion: mcpconst.ClientVersion,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = transport.NewHTTPClient(cfg.Timeout)
	}
	c.logger = c.logger.With().Str("mcp_url", c.url).Logger()

	return c, nil
}

// SessionID returns the last session id the server handed out, or "".
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) captureSession(h http.Header) {
	sid := h.Get(mcpconst.MCP_SESSION_ID_HEADER)
	if sid == "" {
		return
	}

	c.mu.Lock()
	prev := c.sessionID
	c.sessionID = sid
	c.mu.Unlock()

	if prev != sid {
		c.logger.Info().Str("session", sid).Str("previous", prev).Msg("mcp session established")
	}
}

// Request sends one JSON-RPC call and returns the decoded envelope without
// unwrapping it; callers inspect Result and Error themselves. params nil is sent
// as an empty object. Every call consumes the next id, whatever its outcome.
func (c *Client) Request(ctx context.Context, method mcpconst.JsonRpcMethod, params any) (*jsonrpc.Response, error) {
	if method == "" {
		return nil, mcperr.Configf("JSON-RPC method is required")
	}

	id := c.nextID.Add(1)

	headers := map[string]string{
		mcpconst.AuthorizationHeader: "Bearer " + c.token,
	}
	sessionID := c.SessionID()
	if sessionID != "" {
		headers[mcpconst.MCP_SESSION_ID_HEADER] = sessionID
	}

	httpReq, err := jsonrpc.NewJSONRPCRequest(ctx, c.url, id, method, params, headers, c.requester)
	if err != nil {
		return nil, mcperr.Configf("%s: %v", method, err)
	}

	c.logger.Debug().Str("method", string(method)).Uint64("id", id).Str("session", sessionID).Msg("mcp request")

	resp, httpResp, err := jsonrpc.DoRequest(c.httpClient, httpReq, method)
	if httpResp != nil {
		c.captureSession(httpResp.Header)
		c.logger.Debug().
			Str("method", string(method)).
			Uint64("id", id).
			Int("status", httpResp.StatusCode).
			Str("content_type", httpResp.Header.Get("Content-Type")).
			Msg("mcp response")
	}
	if err != nil {
		c.logger.Debug().Err(err).Str("method", string(method)).Uint64("id", id).Msg("mcp request failed")
		return nil, err
	}

	return resp, nil
}

// Initialize performs the handshake. An error object in the initialize envelope
// stops the handshake with a ProtocolError; the initialized notification's
// envelope is not inspected, but its transport or decode failure is returned.
func (c *Client) Initialize(ctx context.Context) (*jsonrpc.Response, error) {
	resp, err := c.Request(ctx, mcpconst.Initialize, c.initializeParams())
	if err != nil {
		return nil, err
	}
	if payload := resp.ErrorJSON(); payload != nil {
		return nil, &mcperr.ProtocolError{Method: string(mcpconst.Initialize), Payload: payload}
	}

	if _, err := c.Request(ctx, mcpconst.NotificationsInitialized, nil); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": mcpconst.ProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    c.clientName,
			"version": c.clientVersion,
		},
	}
}

// CallTool runs the handshake and then tools/call. args is passed through
// unvalidated; nil is sent as an empty object.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*jsonrpc.Response, error) {
	if name == "" {
		return nil, mcperr.Configf("tool name is required")
	}
	if args == nil {
		args = map[string]any{}
	}

	if _, err := c.Initialize(ctx); err != nil {
		return nil, err
	}

	return c.Request(ctx, mcpconst.ToolsCall, map[string]any{
		"name":      name,
		"arguments": args,
	})
}

// ListTools runs the handshake and then tools/list.
func (c *Client) ListTools(ctx context.Context) (*jsonrpc.Response, error) {
	if _, err := c.Initialize(ctx); err != nil {
		return nil, err
	}

	return c.Request(ctx, mcpconst.ToolsList, nil)
}
