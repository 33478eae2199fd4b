package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Ragora/T2-EngineScraper/internal/storage"
)

// MCP error codes
const (
	ErrorCodeInvalidParams    = -32602 // Invalid method parameters
	ErrorCodeInternalError    = -32603 // Internal JSON-RPC error
	ErrorCodeDumpNotFound     = -32001 // Specified path is not a readable dump file
	ErrorCodeScrapeInProgress = -32002 // Another scrape operation is already running
	ErrorCodeNotScraped       = -32003 // Dump not scraped yet
	ErrorCodeEmptyQuery       = -32004 // Query parameter is empty
)

// handleScrapeDump handles the scrape_dump tool invocation
func (s *Server) handleScrapeDump(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	if err := validateDumpPath(path); err != nil {
		return nil, newMCPError(ErrorCodeDumpNotFound, "invalid dump path", map[string]interface{}{
			"param":  "path",
			"reason": err.Error(),
		})
	}

	// One scrape at a time; reject rather than queue
	if !s.lock.TryAcquire() {
		return nil, newMCPError(ErrorCodeScrapeInProgress, "another scrape is already running", nil)
	}
	defer s.lock.Release()

	catalog, stats, err := s.scanner.ScrapeFile(path)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "scrape failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	run, err := storage.PersistCatalog(ctx, s.storage, path, catalog, stats)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to persist catalog", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Format response
	response := map[string]interface{}{
		"scraped":          true,
		"run_id":           run.ID,
		"global_functions": catalog.GlobalFunctionCount(),
		"type_methods":     catalog.TypeMethodTotal(),
		"global_values":    len(catalog.GlobalValues),
		"datablocks":       len(catalog.Datablocks),
		"properties":       catalog.PropertyTotal(),
		"discarded":        run.DiscardedCount,
		"duration_ms":      stats.Duration.Milliseconds(),
	}

	if len(stats.UnresolvedOwners) > 0 {
		// Include first few unresolved owner addresses
		ownerCount := len(stats.UnresolvedOwners)
		if ownerCount > 5 {
			response["unresolved_owners"] = stats.UnresolvedOwners[:5]
			response["unresolved_owner_count"] = ownerCount
		} else {
			response["unresolved_owners"] = stats.UnresolvedOwners
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleLookupSymbol handles the lookup_symbol tool invocation
func (s *Server) handleLookupSymbol(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeEmptyQuery, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	functions, err := s.storage.SearchFunctions(ctx, query, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	results := make([]map[string]interface{}, 0, len(functions))
	for _, fn := range functions {
		entry := map[string]interface{}{
			"name":        fn.Name,
			"address":     fn.Address,
			"kind":        fn.Kind,
			"description": fn.Description,
			"min_args":    fn.MinArgs,
			"max_args":    fn.MaxArgs,
		}
		if fn.TypeName != "" {
			entry["type_name"] = fn.TypeName
		}
		results = append(results, entry)
	}

	response := map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Extract and validate parameters
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	status, err := s.storage.GetRunStatus(ctx, path)
	if errors.Is(err, storage.ErrNotFound) {
		response := map[string]interface{}{
			"scraped": false,
			"path":    path,
			"message": "Dump not scraped. Use scrape_dump tool to scrape this file.",
		}
		return mcp.NewToolResultText(formatJSON(response)), nil
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	run := status.Run
	response := map[string]interface{}{
		"scraped": true,
		"run": map[string]interface{}{
			"path":           run.DumpPath,
			"schema_version": run.SchemaVersion,
			"scraped_at":     run.ScrapedAt.Format("2006-01-02T15:04:05Z07:00"),
			"duration_ms":    run.DurationMS,
		},
		"statistics": map[string]interface{}{
			"function_count":   status.FunctionCount,
			"value_count":      status.ValueCount,
			"datablock_count":  status.DatablockCount,
			"property_count":   status.PropertyCount,
			"discarded_count":  run.DiscardedCount,
			"unresolved_count": len(run.UnresolvedOwners),
			"database_size_mb": fmt.Sprintf("%.2f", status.DatabaseSizeMB),
		},
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// validateDumpPath checks if a path names a readable dump file
func validateDumpPath(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	// Check if path is absolute
	if !filepath.IsAbs(path) {
		return ErrPathNotAbsolute
	}

	// Check if path exists
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	// Dumps are single files, not directories
	if info.IsDir() {
		return ErrPathIsDirectory
	}

	// Check that the file is readable
	f, err := os.Open(path)
	if err != nil {
		return ErrPathNotReadable
	}
	_ = f.Close()

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotAbsolute = errors.New("path must be absolute")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrPathIsDirectory = errors.New("path is a directory, not a dump file")
)
