// Package mcperr holds the failure classes surfaced by the MCP client.
//
// Every error carries a gRPC status code so callers can classify a failure with
// status.Code(err) without type-switching.
package mcperr

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MaxSnippet bounds the body prefix quoted by a DecodeError.
const MaxSnippet = 500

// ConfigError reports a missing or malformed setting, detected before any network call.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

func (e *ConfigError) GRPCStatus() *status.Status {
	return status.New(codes.FailedPrecondition, e.Error())
}

// Configf builds a ConfigError.
func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// TransportError reports a connection failure or an inactivity timeout.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) GRPCStatus() *status.Status {
	return status.New(codes.Unavailable, e.Error())
}

// DecodeError reports a body that is neither JSON nor an SSE frame wrapping JSON.
type DecodeError struct {
	Snippet string
	Err     error
}

// NewDecodeError keeps at most MaxSnippet characters of body.
func NewDecodeError(body []byte, err error) *DecodeError {
	return &DecodeError{Snippet: Snippet(body, MaxSnippet), Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response: %s", e.Snippet)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) GRPCStatus() *status.Status {
	return status.New(codes.Internal, e.Error())
}

// ProtocolError reports a JSON-RPC envelope carrying an error object. Payload is
// the error object exactly as the server sent it.
type ProtocolError struct {
	Method  string
	Payload json.RawMessage
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("MCP %s failed: %s", e.Method, string(e.Payload))
}

func (e *ProtocolError) GRPCStatus() *status.Status {
	return status.New(codes.Aborted, e.Error())
}

// Snippet returns the first max characters of body. It counts runes so a
// multi-byte character is never split.
func Snippet(body []byte, max int) string {
	if utf8.RuneCount(body) <= max {
		return string(body)
	}
	n := 0
	for i := range string(body) {
		if n == max {
			return string(body[:i])
		}
		n++
	}
	return string(body)
}
