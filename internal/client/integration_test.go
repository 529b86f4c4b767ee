package client

import (
	"context"
	"net/http/httptest"
	"sort"
	"testing"

	"hypertask-mcp/internal/examplemcp"

	asserts "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run the client against real MCP server implementations.

func TestAgainstJSONServer(t *testing.T) {
	closeLine := &examplemcp.CloseLine{}
	defer closeLine.Close()

	ts := httptest.NewServer(examplemcp.NewJSONServer(t.Name(), "/mcp"))
	closeLine.Add(ts.Close)

	exerciseExampleServer(t, ts.URL+"/mcp")
}

// The go-sdk server frames its answers as SSE message events.
func TestAgainstSSEServer(t *testing.T) {
	closeLine := &examplemcp.CloseLine{}
	defer closeLine.Close()

	ts := httptest.NewServer(examplemcp.NewSSEServer(t.Name()))
	closeLine.Add(ts.Close)

	exerciseExampleServer(t, ts.URL)
}

// exerciseExampleServer lists the example tools and calls each of them.
func exerciseExampleServer(t *testing.T, url string) {
	assert := asserts.New(t)

	c := newTestClient(t, url)
	ctx := context.Background()

	listResp, err := c.ListTools(ctx)
	require.NoError(t, err)
	assert.NotEmpty(c.SessionID())

	tools, ok := Tools(listResp)
	assert.True(ok)
	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	assert.Equal([]string{"add", "echo", "lower"}, names)

	for _, tc := range []struct {
		tool     string
		args     map[string]any
		expected string
	}{
		{"echo", map[string]any{"msg": "hi"}, "hi"},
		{"add", map[string]any{"a": 1, "b": 10}, "11"},
		{"lower", map[string]any{"s": "MixedCase"}, "mixedcase"},
	} {
		t.Run(tc.tool, func(t *testing.T) {
			assert := asserts.New(t)

			resp, err := c.CallTool(ctx, tc.tool, tc.args)
			require.NoError(t, err)
			assert.Nil(resp.ErrorJSON())

			items, ok := Content(resp)
			assert.True(ok)
			if assert.Len(items, 1) {
				assert.Equal("text", items[0].Type)
				assert.Equal(tc.expected, items[0].Text)
			}
		})
	}
}
