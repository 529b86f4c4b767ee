// Package transport builds the HTTP client used to reach MCP endpoints.
//
// The client enforces a socket inactivity timeout rather than a total request
// timeout: every read or write on a connection pushes its deadline forward, so a
// slow but steady response is fine while a server that goes silent is aborted.
package transport

import (
	"context"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultIdleTimeout aborts a request after this long without socket activity.
	DefaultIdleTimeout = 30 * time.Second

	DefaultDialTimeout         = 10 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
	DefaultKeepAlive           = 30 * time.Second
	DefaultIdleConnTimeout     = 90 * time.Second
)

// NewHTTPClient returns a client whose connections time out after idle of
// inactivity. A non-positive idle uses DefaultIdleTimeout.
func NewHTTPClient(idle time.Duration) *http.Client {
	return &http.Client{Transport: NewTransport(idle)}
}

// NewTransport builds the http.Transport behind NewHTTPClient.
func NewTransport(idle time.Duration) *http.Transport {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}

	dialer := &net.Dialer{
		Timeout:   min(DefaultDialTimeout, idle),
		KeepAlive: DefaultKeepAlive,
	}

	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return newIdleConn(conn, idle), nil
		},
		TLSHandshakeTimeout:   min(DefaultTLSHandshakeTimeout, idle),
		ResponseHeaderTimeout: idle,
		// pooled connections must leave before their own deadline fires
		IdleConnTimeout:       min(DefaultIdleConnTimeout, idle/2),
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   2,
		ForceAttemptHTTP2:     true,
	}
}

// idleConn extends its deadline on every I/O call. Both directions move together so a
// read parked on a reused connection is not cut short by the previous request.
type idleConn struct {
	net.Conn
	idle time.Duration
}

func newIdleConn(conn net.Conn, idle time.Duration) *idleConn {
	c := &idleConn{Conn: conn, idle: idle}
	_ = c.Conn.SetDeadline(time.Now().Add(idle))
	return c
}

func (c *idleConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetDeadline(time.Now().Add(c.idle)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

func (c *idleConn) Write(p []byte) (int, error) {
	if err := c.Conn.SetDeadline(time.Now().Add(c.idle)); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}
