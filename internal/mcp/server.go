package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Ragora/T2-EngineScraper/internal/config"
	"github.com/Ragora/T2-EngineScraper/internal/scanner"
	"github.com/Ragora/T2-EngineScraper/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "t2scrape-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the database
	DefaultDBPath = "~/.t2scrape"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	storage storage.Storage
	scanner *scanner.Scanner
	lock    ScrapeLock
}

// NewServer creates a new MCP server instance. configPath optionally names
// an HCL table override file; empty means the compiled-in Tribes 2 tables.
func NewServer(dbPath, configPath string) (*Server, error) {
	// Expand home directory if needed
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".t2scrape")
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbFile := filepath.Join(dbPath, "t2ref.db")

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Load lookup tables
	tables := config.Default()
	if configPath != "" {
		tables, err = config.Load(configPath)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// Create scanner
	scan, err := scanner.New(tables)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create scanner: %w", err)
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		storage: store,
		scanner: scan,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	// Register scrape_dump tool
	s.mcp.AddTool(scrapeDumpTool(), s.handleScrapeDump)

	// Register lookup_symbol tool
	s.mcp.AddTool(lookupSymbolTool(), s.handleLookupSymbol)

	// Register get_status tool
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	return nil
}
