package examplemcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type echoArgs struct {
	Msg string `json:"msg" jsonschema:"the message to echo"`
}

type addArgs struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type lowerArgs struct {
	S string `json:"s"`
}

func textResult(text string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func sseEcho(ctx context.Context, req *mcp.ServerRequest[*mcp.CallToolParamsFor[echoArgs]]) (*mcp.CallToolResultFor[any], error) {
	return textResult(echoText(req.Params.Arguments.Msg)), nil
}

func sseAdd(ctx context.Context, req *mcp.ServerRequest[*mcp.CallToolParamsFor[addArgs]]) (*mcp.CallToolResultFor[any], error) {
	return textResult(addText(req.Params.Arguments.A, req.Params.Arguments.B)), nil
}

func sseLower(ctx context.Context, req *mcp.ServerRequest[*mcp.CallToolParamsFor[lowerArgs]]) (*mcp.CallToolResultFor[any], error) {
	return textResult(lowerText(req.Params.Arguments.S)), nil
}

// NewSSEServer returns a go-sdk streamable handler serving the same tools as
// NewJSONServer; its responses are SSE framed.
func NewSSEServer(serverName string) http.Handler {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: "0.0.0"}, nil)
	mcp.AddTool(server, &mcp.Tool{Name: "echo", Description: description("echo")}, sseEcho)
	mcp.AddTool(server, &mcp.Tool{Name: "add", Description: description("add")}, sseAdd)
	mcp.AddTool(server, &mcp.Tool{Name: "lower", Description: description("lower")}, sseLower)

	return acceptNotificationIDs(mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil))
}

func description(name string) string {
	for _, tp := range ToolsProvided {
		if tp.GetName() == name {
			return tp.tool.Description
		}
	}
	return ""
}

// acceptNotificationIDs lets clients that number their notifications talk to the
// go-sdk server, which refuses a notification carrying an id. The id is stripped
// before the message is handled and an empty reply is replaced by an empty
// result for that id.
func acceptNotificationIDs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		stripped, id, ok := stripNotificationID(body)
		if !ok {
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(stripped))
		r.ContentLength = int64(len(stripped))

		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		if rec.Code != http.StatusAccepted && rec.Body.Len() > 0 {
			w.WriteHeader(rec.Code)
			_, _ = w.Write(rec.Body.Bytes())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Del("Content-Length")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{}}`, id)
	})
}

// stripNotificationID removes the id from a single notifications/* message.
// ok is false when body is anything else.
func stripNotificationID(body []byte) (stripped []byte, id json.RawMessage, ok bool) {
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, nil, false
	}

	var method string
	if err := json.Unmarshal(msg["method"], &method); err != nil || !strings.HasPrefix(method, "notifications/") {
		return nil, nil, false
	}
	id, ok = msg["id"]
	if !ok || string(id) == "null" {
		return nil, nil, false
	}

	delete(msg, "id")
	stripped, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, false
	}
	return stripped, id, true
}
