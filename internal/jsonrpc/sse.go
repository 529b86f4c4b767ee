package jsonrpc

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/tmaxmax/go-sse"
)

var messageMarker = []byte("event: message")

// decodeSSE returns the data of the first SSE event named "message" when it holds
// valid JSON. Bodies without an "event: message" line are left to the JSON path.
// A trailing blank line is appended so a frame cut off at EOF is still dispatched.
func decodeSSE(body []byte) (json.RawMessage, bool) {
	if !bytes.Contains(body, messageMarker) {
		return nil, false
	}

	for ev, err := range sse.Read(io.MultiReader(bytes.NewReader(body), strings.NewReader("\n\n")), nil) {
		if err != nil {
			return nil, false
		}
		if ev.Type != "message" {
			continue
		}
		data := []byte(ev.Data)
		if !json.Valid(data) {
			return nil, false
		}
		return json.RawMessage(data), true
	}
	return nil, false
}
