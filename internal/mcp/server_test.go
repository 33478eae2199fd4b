package mcp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer creates a server over a throwaway database with a table
// override shrinking the declaration prefix to fit small fixtures.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "tables.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte("skip_lines = 0\n"), 0644))

	server, err := NewServer(t.TempDir(), configPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.storage.Close() })
	return server
}

func TestNewServer(t *testing.T) {
	server := newTestServer(t)

	assert.NotNil(t, server.mcp, "MCP server should be initialized")
	assert.NotNil(t, server.storage, "Storage should be initialized")
	assert.NotNil(t, server.scanner, "Scanner should be initialized")
}

func TestNewServer_CreatesDatabaseDirectory(t *testing.T) {
	dbDir := filepath.Join(t.TempDir(), "nested", "db")

	server, err := NewServer(dbDir, "")
	require.NoError(t, err)
	defer func() { _ = server.storage.Close() }()

	_, err = os.Stat(filepath.Join(dbDir, "t2ref.db"))
	assert.NoError(t, err)
}

func TestNewServer_BadConfigPath(t *testing.T) {
	_, err := NewServer(t.TempDir(), filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
