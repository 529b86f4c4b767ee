package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"hypertask-mcp/internal/mcpconst"
	"hypertask-mcp/internal/mcperr"

	"github.com/sourcegraph/jsonrpc2"
)

// this allows us to leverage different ways to create the http Request, a normal
// network one or also a mock one for testing. we set headers and deal with the body
// the same either way in NewJSONRPCRequest()
type NewHttpRequester func(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error)

// Response is a decoded JSON-RPC envelope. Raw is the JSON document exactly as it
// was extracted from the HTTP body, so callers can print or re-decode it.
type Response struct {
	*jsonrpc2.Response
	Raw json.RawMessage
}

// ErrorJSON returns the envelope's error object as sent, or nil.
func (r *Response) ErrorJSON() json.RawMessage {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(r.Raw, &probe); err != nil || len(probe.Error) == 0 || string(probe.Error) == "null" {
		return nil
	}
	return probe.Error
}

// This function consolidates request manipulation for a JSONRPC request. The id is
// owned by the caller; params nil is sent as an empty object.
func NewJSONRPCRequest(ctx context.Context, url string, id uint64, jsonRpcMethod mcpconst.JsonRpcMethod, params any,
	additionalHeaders map[string]string, reqFunc NewHttpRequester) (*http.Request, error) {

	if params == nil {
		params = map[string]any{}
	}

	reqBody := &jsonrpc2.Request{
		Method: string(jsonRpcMethod),
		ID:     jsonrpc2.ID{Num: id},
	}
	if err := reqBody.SetParams(params); err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error putting together jsonrpc request: %w", err)
	}

	req, err := reqFunc(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("problem creating new JSONRPC request: %w", err)
	}
	req.ContentLength = int64(len(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	for header, val := range additionalHeaders {
		req.Header.Set(header, val)
	}

	return req, nil
}

// DoRequest sends a JSON-RPC request and reads the whole body before decoding it,
// accepting both application/json and text/event-stream framing. The HTTP status is
// not inspected: whatever the server wrote is decoded as an envelope.
func DoRequest(client *http.Client, req *http.Request, jsonRpcMethod mcpconst.JsonRpcMethod) (*Response, *http.Response, error) {
	httpResp, err := client.Do(req)
	if err != nil {
		return nil, nil, &mcperr.TransportError{Method: string(jsonRpcMethod), Err: err}
	}

	body, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return nil, httpResp, &mcperr.TransportError{Method: string(jsonRpcMethod), Err: err}
	}

	raw, err := Decode(body)
	if err != nil {
		return nil, httpResp, err
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		return nil, httpResp, mcperr.NewDecodeError(body, err)
	}

	return resp, httpResp, nil
}

// ParseResponse unpacks a JSON document into a JSON-RPC envelope. Any valid JSON
// is accepted: fields that do not fit the JSON-RPC types (a string error, a float
// code, a non-object document) are left unset on the embedded jsonrpc2.Response
// and stay reachable through Raw and ErrorJSON.
func ParseResponse(raw json.RawMessage) (*Response, error) {
	if !json.Valid(raw) {
		return nil, errors.New("not a JSON document")
	}

	var strict jsonrpc2.Response
	if err := json.Unmarshal(raw, &strict); err == nil {
		return &Response{Response: &strict, Raw: raw}, nil
	}

	return &Response{Response: lenientResponse(raw), Raw: raw}, nil
}

// lenientResponse fills what it can of an envelope jsonrpc2 refused to decode.
func lenientResponse(raw json.RawMessage) *jsonrpc2.Response {
	resp := &jsonrpc2.Response{}

	var envelope struct {
		ID     json.RawMessage `json:"id"`
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resp
	}

	if len(envelope.Result) > 0 {
		result := envelope.Result
		resp.Result = &result
	}

	var id jsonrpc2.ID
	if len(envelope.ID) > 0 && json.Unmarshal(envelope.ID, &id) == nil {
		resp.ID = id
	}

	var rpcErr jsonrpc2.Error
	if len(envelope.Error) > 0 && string(envelope.Error) != "null" && json.Unmarshal(envelope.Error, &rpcErr) == nil {
		resp.Error = &rpcErr
	}

	return resp
}

var errNotJSON = errors.New("body is neither JSON nor an SSE message event")

// Decode extracts the JSON document carried by a response body. An SSE message
// event is tried first; the whole body is parsed as JSON second.
func Decode(body []byte) (json.RawMessage, error) {
	if data, ok := decodeSSE(body); ok {
		return data, nil
	}

	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, mcperr.NewDecodeError(body, errNotJSON)
	}
	return json.RawMessage(trimmed), nil
}
