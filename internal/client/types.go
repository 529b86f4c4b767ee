package client

import (
	"encoding/json"

	"hypertask-mcp/internal/jsonrpc"
)

// Tool is an MCP tool as returned by tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema,omitempty"`
}

// ContentItem is one entry of a tools/call result. Raw keeps the item as sent so
// non-text content can be shown untouched.
type ContentItem struct {
	Type string
	Text string
	Raw  json.RawMessage
}

// Tools extracts result.tools. ok is false when the envelope has no tools list.
func Tools(resp *jsonrpc.Response) (tools []Tool, ok bool) {
	if resp == nil || resp.Result == nil {
		return nil, false
	}
	var result struct {
		Tools *[]Tool `json:"tools"`
	}
	if err := json.Unmarshal(*resp.Result, &result); err != nil || result.Tools == nil {
		return nil, false
	}
	return *result.Tools, true
}

// Content extracts result.content. ok is false when the envelope has no content list.
func Content(resp *jsonrpc.Response) (items []ContentItem, ok bool) {
	if resp == nil || resp.Result == nil {
		return nil, false
	}
	var result struct {
		Content *[]json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(*resp.Result, &result); err != nil || result.Content == nil {
		return nil, false
	}

	items = make([]ContentItem, 0, len(*result.Content))
	for _, raw := range *result.Content {
		var typeProbe struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}
		// items that are not objects keep only their raw form
		_ = json.Unmarshal(raw, &typeProbe)
		items = append(items, ContentItem{Type: typeProbe.Type, Text: typeProbe.Text, Raw: raw})
	}
	return items, true
}
