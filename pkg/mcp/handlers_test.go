package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadiacollections/fluentstatic/pkg/runner"
)

// --- helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServer(t *testing.T) *Server {
	t.Helper()
	r, err := runner.New(runner.DefaultConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return NewServer(r, nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "extract_source":
		handler = s.handleExtractSource
	case "extract_project":
		handler = s.handleExtractProject
	case "get_stylesheet":
		handler = s.handleGetStylesheet
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

const buttonSource = `
const buttonStyles = (props) => ({
	root: { color: "red", padding: 8 },
});
`

// --- extract_source ---

func TestHandleExtractSource(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("extract_source", map[string]any{
		"source": buttonSource,
	}))
	assert.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, true, payload["changed"])
	assert.Contains(t, payload["css"], "color:red")

	classes, ok := payload["classes"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, classes, "root")
}

func TestHandleExtractSource_MissingSource(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("extract_source", nil))
	assert.True(t, result.IsError)
}

// --- extract_project ---

func TestHandleExtractProject_WriteThenRerun(t *testing.T) {
	s := testServer(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "button.tsx")
	require.NoError(t, os.WriteFile(path, []byte(buttonSource), 0o644))

	result := callTool(t, s, makeRequest("extract_project", map[string]any{
		"root":  dir,
		"write": true,
	}))
	assert.False(t, result.IsError)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &first))
	assert.Equal(t, float64(1), first["files_changed"])

	// The rewrite landed on disk.
	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "fs-")
	assert.NotContains(t, string(rewritten), `color: "red"`)

	// A second call in the same server process must see the rewritten content,
	// not a stale mapping of the original source.
	result = callTool(t, s, makeRequest("extract_project", map[string]any{"root": dir}))
	assert.False(t, result.IsError)

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &second))
	assert.Equal(t, float64(1), second["files_processed"])
	assert.Equal(t, float64(0), second["files_changed"])
	assert.Equal(t, float64(0), second["files_failed"])
}

func TestHandleExtractProject_MissingRoot(t *testing.T) {
	s := testServer(t)
	result := callTool(t, s, makeRequest("extract_project", nil))
	assert.True(t, result.IsError)
}

// --- get_stylesheet ---

func TestHandleGetStylesheet(t *testing.T) {
	s := testServer(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.tsx"), []byte(buttonSource), 0o644))

	result := callTool(t, s, makeRequest("get_stylesheet", map[string]any{"root": dir}))
	assert.False(t, result.IsError)

	css := resultText(t, result)
	assert.Contains(t, css, "color:red")
	assert.Contains(t, css, "padding:8px")
}
