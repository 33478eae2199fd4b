// Package mcp implements the Model Context Protocol (MCP) server for the
// engine reference scraper.
//
// The MCP server exposes three tools to AI coding assistants:
//   - scrape_dump: Scrape a decompiled dump and persist the catalog
//   - lookup_symbol: Search persisted functions by name or description
//   - get_status: Check scrape status and statistics for a dump
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Tool: scrape_dump
//
// Scrape a decompiled dump file and persist the extracted catalog:
//
//	Request:
//	{
//	  "name": "scrape_dump",
//	  "arguments": {
//	    "path": "/dumps/Tribes2.c"
//	  }
//	}
//
//	Response:
//	{
//	  "scraped": true,
//	  "global_functions": 1184,
//	  "type_methods": 594,
//	  "global_values": 312,
//	  "datablocks": 63,
//	  "properties": 2210,
//	  "discarded": 4,
//	  "duration_ms": 1830
//	}
//
// Only one scrape runs at a time; a concurrent call is rejected with
// error code -32002 instead of queued.
//
// # Tool: lookup_symbol
//
// Full-text search over persisted function names and descriptions:
//
//	Request:
//	{
//	  "name": "lookup_symbol",
//	  "arguments": {
//	    "query": "damage",
//	    "limit": 10
//	  }
//	}
//
// # Tool: get_status
//
// Check scrape status for a dump path:
//
//	Request:
//	{
//	  "name": "get_status",
//	  "arguments": {
//	    "path": "/dumps/Tribes2.c"
//	  }
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "Invalid params",
//	    "data": {
//	      "param": "path",
//	      "reason": "path does not exist"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32001: Dump file not found or unreadable
//   - -32002: Scrape in progress
//   - -32003: Dump not scraped
//   - -32004: Empty query
//   - -32603: Internal error (scrape, database, filesystem)
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol).
package mcp
