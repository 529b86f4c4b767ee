// Package examplemcp provides small in-process MCP servers for trying the client
// against both response encodings: NewJSONServer answers with application/json,
// NewSSEServer answers with text/event-stream.
package examplemcp

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ProvidedTool struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

func (pt ProvidedTool) GetName() string {
	return pt.tool.Name
}

// ToolsProvided is the tool set both example servers expose.
var ToolsProvided = []ProvidedTool{
	{
		mcp.NewTool("echo",
			mcp.WithDescription("Echo a message back"),
			mcp.WithString("msg", mcp.Required(), mcp.Description("the message to echo")),
		), doEcho,
	},
	{
		mcp.NewTool("add",
			mcp.WithDescription("Add two numbers"),
			mcp.WithNumber("a", mcp.Required()),
			mcp.WithNumber("b", mcp.Required()),
		), doAdd,
	},
	{
		mcp.NewTool("lower",
			mcp.WithDescription("lower case a string"),
			mcp.WithString("s", mcp.Required()),
		), doLower,
	},
}

// NewJSONServer returns a streamable HTTP handler serving ToolsProvided at path.
func NewJSONServer(serverName string, path string) http.Handler {
	s := server.NewMCPServer(serverName,
		"0.0.0",
		server.WithToolCapabilities(true),
	)

	for _, tp := range ToolsProvided {
		s.AddTool(tp.tool, tp.handler)
	}

	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(path))
}

// below are the handlers for the respective MCP tools

func doEcho(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg, err := request.RequireString("msg")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(echoText(msg)), nil
}

func doAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireFloat("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := request.RequireFloat("b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(addText(a, b)), nil
}

func doLower(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := request.RequireString("s")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(lowerText(s)), nil
}

// tool logic shared by both servers

func echoText(msg string) string {
	return msg
}

func addText(a, b float64) string {
	return strconv.FormatFloat(a+b, 'f', -1, 64)
}

func lowerText(s string) string {
	return strings.ToLower(s)
}
