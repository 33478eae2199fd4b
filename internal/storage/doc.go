// Package storage provides SQLite-based persistence for scraped engine
// catalogs.
//
// The storage layer manages:
//   - Scrape runs (one per dump file, replaced on re-scrape)
//   - Callables: global functions and type-bound methods
//   - Runtime-exposed global values
//   - Datablock types and their properties
//   - Full-text search over function names and descriptions
//
// # Database Schema
//
// Tables:
//   - runs: Scrape run metadata (dump path, counts, unresolved owners)
//   - functions: Callables with kind 'global' or 'method'
//   - global_values: Runtime variables with primitive type codes
//   - datablocks: Datablock types, unique per run
//   - datablock_properties: Properties, unique per datablock and name
//   - functions_fts: FTS5 full-text search index over functions
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage("t2ref.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	run, err := storage.PersistCatalog(ctx, store, dumpPath, catalog, stats)
//
// # Transactions
//
// Use transactions for atomic batch writes:
//
//	tx, err := store.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	for _, fn := range functions {
//	    tx.InsertFunction(ctx, fn)
//	}
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// # Full-Text Search
//
// Query using BM25 ranking:
//
//	results, err := store.SearchFunctions(ctx, "damage", 10)
//	for _, fn := range results {
//	    fmt.Printf("%s @ 0x%s\n", fn.Name, fn.Address)
//	}
//
// FTS5 indexes are updated by triggers when functions are inserted.
//
// # Build Tags
//
// The storage package supports two build configurations:
//
// CGO Build (sqlite_cgo tag):
//
//   - Uses github.com/mattn/go-sqlite3 driver
//
//   - Requires C compiler
//
//     CGO_ENABLED=1 go build -tags "sqlite_cgo,sqlite_fts5"
//
// Pure Go Build (default, or purego tag):
//
//   - Uses modernc.org/sqlite driver
//
//   - No C compiler needed
//
//     CGO_ENABLED=0 go build -tags "purego"
package storage
