package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolFixtureDump = `//----- (004A0000) --------------------------------------------------------
int registerConsole() {
  sub_426650("echo", &sub_5A0F00, "echo(text); prints to console", 2, 2);
  sub_426450(&unk_765F10, "Player", "setDamage", &sub_5CF230, "obj.setDamage(amount); applies damage", 3, 3);
  sub_4263B0("Cl::Fov", 5, &dword_88AE20);
}
//----- (0061E7A0) --------------------------------------------------------
int sub_61E7A0(int a1) {
  sub_423F20("mass", 5, &unk_6F2A10);
}
`

func writeFixtureDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.c")
	require.NoError(t, os.WriteFile(path, []byte(toolFixtureDump), 0644))
	return path
}

func callTool(name string, args map[string]interface{}) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func requireMCPErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	var mcpErr *MCPError
	require.ErrorAs(t, err, &mcpErr)
	assert.Equal(t, code, mcpErr.Code)
}

func TestHandleScrapeDump(t *testing.T) {
	server := newTestServer(t)
	path := writeFixtureDump(t)

	result, err := server.handleScrapeDump(context.Background(), callTool("scrape_dump", map[string]interface{}{
		"path": path,
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, true, payload["scraped"])
	assert.Equal(t, float64(1), payload["global_functions"])
	assert.Equal(t, float64(1), payload["type_methods"])
	assert.Equal(t, float64(1), payload["global_values"])
	assert.Equal(t, float64(1), payload["datablocks"])
	assert.Equal(t, float64(1), payload["properties"])
}

func TestHandleScrapeDump_MissingPath(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleScrapeDump(context.Background(), callTool("scrape_dump", map[string]interface{}{}))
	requireMCPErrorCode(t, err, ErrorCodeInvalidParams)
}

func TestHandleScrapeDump_NonexistentFile(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleScrapeDump(context.Background(), callTool("scrape_dump", map[string]interface{}{
		"path": filepath.Join(t.TempDir(), "absent.c"),
	}))
	requireMCPErrorCode(t, err, ErrorCodeDumpNotFound)
}

func TestHandleScrapeDump_RelativePath(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleScrapeDump(context.Background(), callTool("scrape_dump", map[string]interface{}{
		"path": "dump.c",
	}))
	requireMCPErrorCode(t, err, ErrorCodeDumpNotFound)
}

func TestHandleScrapeDump_RejectsConcurrentScrape(t *testing.T) {
	server := newTestServer(t)
	path := writeFixtureDump(t)

	require.True(t, server.lock.TryAcquire())
	defer server.lock.Release()

	_, err := server.handleScrapeDump(context.Background(), callTool("scrape_dump", map[string]interface{}{
		"path": path,
	}))
	requireMCPErrorCode(t, err, ErrorCodeScrapeInProgress)
}

func TestHandleLookupSymbol(t *testing.T) {
	server := newTestServer(t)
	path := writeFixtureDump(t)
	ctx := context.Background()

	_, err := server.handleScrapeDump(ctx, callTool("scrape_dump", map[string]interface{}{"path": path}))
	require.NoError(t, err)

	result, err := server.handleLookupSymbol(ctx, callTool("lookup_symbol", map[string]interface{}{
		"query": "damage",
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, float64(1), payload["count"])

	results, ok := payload["results"].([]interface{})
	require.True(t, ok)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "setDamage", first["name"])
	assert.Equal(t, "method", first["kind"])
	assert.Equal(t, "Player", first["type_name"])
}

func TestHandleLookupSymbol_EmptyQuery(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleLookupSymbol(context.Background(), callTool("lookup_symbol", map[string]interface{}{
		"query": "",
	}))
	requireMCPErrorCode(t, err, ErrorCodeEmptyQuery)
}

func TestHandleLookupSymbol_LimitBounds(t *testing.T) {
	server := newTestServer(t)

	_, err := server.handleLookupSymbol(context.Background(), callTool("lookup_symbol", map[string]interface{}{
		"query": "echo",
		"limit": float64(500),
	}))
	requireMCPErrorCode(t, err, ErrorCodeInvalidParams)
}

func TestHandleGetStatus_NotScraped(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleGetStatus(context.Background(), callTool("get_status", map[string]interface{}{
		"path": "/dumps/never-scraped.c",
	}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, false, payload["scraped"])
}

func TestHandleGetStatus(t *testing.T) {
	server := newTestServer(t)
	path := writeFixtureDump(t)
	ctx := context.Background()

	_, err := server.handleScrapeDump(ctx, callTool("scrape_dump", map[string]interface{}{"path": path}))
	require.NoError(t, err)

	result, err := server.handleGetStatus(ctx, callTool("get_status", map[string]interface{}{"path": path}))
	require.NoError(t, err)

	payload := resultJSON(t, result)
	assert.Equal(t, true, payload["scraped"])

	stats, ok := payload["statistics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), stats["function_count"])
	assert.Equal(t, float64(1), stats["value_count"])
	assert.Equal(t, float64(1), stats["datablock_count"])
	assert.Equal(t, float64(1), stats["property_count"])
}

func TestScrapeLock(t *testing.T) {
	var lock ScrapeLock

	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())

	lock.Release()
	assert.True(t, lock.TryAcquire())
}
