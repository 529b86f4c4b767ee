package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"hypertask-mcp/internal/client"
	"hypertask-mcp/internal/jsonrpc"
	"hypertask-mcp/internal/mcperr"
)

const descriptionLimit = 100

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// printToolResult writes text items as plain text and anything else as indented
// JSON. Without a content list the result is printed, or the whole envelope when
// there is no result at all.
func printToolResult(w io.Writer, resp *jsonrpc.Response) error {
	items, ok := client.Content(resp)
	if !ok {
		return printResultOrEnvelope(w, resp)
	}

	for _, item := range items {
		var err error
		if item.Type == "text" {
			_, err = fmt.Fprintln(w, item.Text)
		} else {
			_, err = fmt.Fprintln(w, indentJSON(item.Raw))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printResultOrEnvelope(w io.Writer, resp *jsonrpc.Response) error {
	if resp.Result != nil && string(*resp.Result) != "null" {
		_, err := fmt.Fprintln(w, indentJSON(*resp.Result))
		return err
	}
	_, err := fmt.Fprintln(w, indentJSON(resp.Raw))
	return err
}

// printTools writes one "- name: description..." line per tool. Descriptions are
// cut to descriptionLimit characters.
func printTools(w io.Writer, tools []client.Tool) error {
	for _, tool := range tools {
		if _, err := fmt.Fprintf(w, "- %s: %s...\n", tool.Name, mcperr.Snippet([]byte(tool.Description), descriptionLimit)); err != nil {
			return err
		}
	}
	return nil
}
