package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Unresolved owner addresses are stored as one comma-joined column; the
// addresses are bare hex strings and never contain commas.

func joinOwners(owners []string) string {
	return strings.Join(owners, ",")
}

func splitOwners(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// Run operations

// createRunWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createRunWithQuerier(ctx context.Context, q querier, run *Run) error {
	query := `
		INSERT INTO runs (
			dump_path, schema_version, global_function_count, type_method_count,
			global_value_count, property_count, discarded_count, unresolved_owners,
			duration_ms, scraped_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		run.DumpPath, run.SchemaVersion, run.GlobalFunctionCount, run.TypeMethodCount,
		run.GlobalValueCount, run.PropertyCount, run.DiscardedCount, joinOwners(run.UnresolvedOwners),
		run.DurationMS, run.ScrapedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = id
	run.CreatedAt = now
	run.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateRun(ctx context.Context, run *Run) error {
	return s.createRunWithQuerier(ctx, s.querier(), run)
}

func scanRun(row *sql.Row) (*Run, error) {
	var run Run
	var owners string
	var scrapedAt sql.NullTime
	err := row.Scan(
		&run.ID, &run.DumpPath, &run.SchemaVersion,
		&run.GlobalFunctionCount, &run.TypeMethodCount, &run.GlobalValueCount,
		&run.PropertyCount, &run.DiscardedCount, &owners,
		&run.DurationMS, &scrapedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	run.UnresolvedOwners = splitOwners(owners)
	if scrapedAt.Valid {
		run.ScrapedAt = scrapedAt.Time
	}
	return &run, nil
}

const runColumns = `
	id, dump_path, schema_version, global_function_count, type_method_count,
	global_value_count, property_count, discarded_count, unresolved_owners,
	duration_ms, scraped_at, created_at, updated_at
`

// getRunWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getRunWithQuerier(ctx context.Context, q querier, dumpPath string) (*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE dump_path = ?`
	return scanRun(q.QueryRowContext(ctx, query, dumpPath))
}

func (s *SQLiteStorage) GetRun(ctx context.Context, dumpPath string) (*Run, error) {
	return s.getRunWithQuerier(ctx, s.querier(), dumpPath)
}

// updateRunWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) updateRunWithQuerier(ctx context.Context, q querier, run *Run) error {
	query := `
		UPDATE runs
		SET schema_version = ?, global_function_count = ?, type_method_count = ?,
		    global_value_count = ?, property_count = ?, discarded_count = ?,
		    unresolved_owners = ?, duration_ms = ?, scraped_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		run.SchemaVersion, run.GlobalFunctionCount, run.TypeMethodCount,
		run.GlobalValueCount, run.PropertyCount, run.DiscardedCount,
		joinOwners(run.UnresolvedOwners), run.DurationMS, run.ScrapedAt, now, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	run.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateRun(ctx context.Context, run *Run) error {
	return s.updateRunWithQuerier(ctx, s.querier(), run)
}

// deleteRunDataWithQuerier clears the catalog rows of a run while keeping
// the run row itself, so a re-scrape replaces data in place.
func (s *SQLiteStorage) deleteRunDataWithQuerier(ctx context.Context, q querier, runID int64) error {
	statements := []string{
		`DELETE FROM datablock_properties WHERE datablock_id IN (SELECT id FROM datablocks WHERE run_id = ?)`,
		`DELETE FROM datablocks WHERE run_id = ?`,
		`DELETE FROM global_values WHERE run_id = ?`,
		`DELETE FROM functions WHERE run_id = ?`,
	}
	for _, stmt := range statements {
		if _, err := q.ExecContext(ctx, stmt, runID); err != nil {
			return fmt.Errorf("failed to delete run data: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStorage) DeleteRunData(ctx context.Context, runID int64) error {
	return s.deleteRunDataWithQuerier(ctx, s.querier(), runID)
}

// Function operations

// insertFunctionWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertFunctionWithQuerier(ctx context.Context, q querier, fn *FunctionRecord) error {
	query := `
		INSERT INTO functions (run_id, name, address, kind, type_name, description, min_args, max_args, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		fn.RunID, fn.Name, fn.Address, fn.Kind, fn.TypeName,
		fn.Description, fn.MinArgs, fn.MaxArgs, now)
	if err != nil {
		return fmt.Errorf("failed to insert function: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	fn.ID = id
	fn.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) InsertFunction(ctx context.Context, fn *FunctionRecord) error {
	return s.insertFunctionWithQuerier(ctx, s.querier(), fn)
}

func scanFunctionRows(rows *sql.Rows) ([]*FunctionRecord, error) {
	defer func() { _ = rows.Close() }()

	functions := make([]*FunctionRecord, 0)
	for rows.Next() {
		var fn FunctionRecord
		err := rows.Scan(
			&fn.ID, &fn.RunID, &fn.Name, &fn.Address, &fn.Kind,
			&fn.TypeName, &fn.Description, &fn.MinArgs, &fn.MaxArgs, &fn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		functions = append(functions, &fn)
	}
	return functions, rows.Err()
}

// listFunctionsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listFunctionsWithQuerier(ctx context.Context, q querier, runID int64, kind string) ([]*FunctionRecord, error) {
	query := `
		SELECT id, run_id, name, address, kind, type_name, description, min_args, max_args, created_at
		FROM functions
		WHERE run_id = ? AND kind = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, runID, kind)
	if err != nil {
		return nil, err
	}
	return scanFunctionRows(rows)
}

func (s *SQLiteStorage) ListFunctions(ctx context.Context, runID int64, kind string) ([]*FunctionRecord, error) {
	return s.listFunctionsWithQuerier(ctx, s.querier(), runID, kind)
}

// searchFunctionsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) searchFunctionsWithQuerier(ctx context.Context, q querier, query string, limit int) ([]*FunctionRecord, error) {
	// Note: In FTS5, 'rank' is a built-in virtual column representing BM25 relevance score.
	// It should be accessed without table qualification when used in ORDER BY.
	// Lower rank values indicate better matches (negative values in FTS5).
	sqlQuery := `
		SELECT f.id, f.run_id, f.name, f.address, f.kind, f.type_name,
		       f.description, f.min_args, f.max_args, f.created_at
		FROM functions f
		JOIN functions_fts fts ON f.id = fts.rowid
		WHERE fts.functions_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := q.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, err
	}
	return scanFunctionRows(rows)
}

func (s *SQLiteStorage) SearchFunctions(ctx context.Context, query string, limit int) ([]*FunctionRecord, error) {
	return s.searchFunctionsWithQuerier(ctx, s.querier(), query, limit)
}

// Global value operations

// insertGlobalValueWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertGlobalValueWithQuerier(ctx context.Context, q querier, gv *GlobalValueRecord) error {
	query := `
		INSERT INTO global_values (run_id, name, type_code, address, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query, gv.RunID, gv.Name, gv.TypeCode, gv.Address, now)
	if err != nil {
		return fmt.Errorf("failed to insert global value: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	gv.ID = id
	gv.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) InsertGlobalValue(ctx context.Context, gv *GlobalValueRecord) error {
	return s.insertGlobalValueWithQuerier(ctx, s.querier(), gv)
}

// listGlobalValuesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listGlobalValuesWithQuerier(ctx context.Context, q querier, runID int64) ([]*GlobalValueRecord, error) {
	query := `
		SELECT id, run_id, name, type_code, address, created_at
		FROM global_values
		WHERE run_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make([]*GlobalValueRecord, 0)
	for rows.Next() {
		var gv GlobalValueRecord
		err := rows.Scan(&gv.ID, &gv.RunID, &gv.Name, &gv.TypeCode, &gv.Address, &gv.CreatedAt)
		if err != nil {
			return nil, err
		}
		values = append(values, &gv)
	}
	return values, rows.Err()
}

func (s *SQLiteStorage) ListGlobalValues(ctx context.Context, runID int64) ([]*GlobalValueRecord, error) {
	return s.listGlobalValuesWithQuerier(ctx, s.querier(), runID)
}

// Datablock operations

// upsertDatablockWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertDatablockWithQuerier(ctx context.Context, q querier, block *DatablockRecord) error {
	// Use atomic INSERT ... ON CONFLICT to avoid race conditions
	query := `
		INSERT INTO datablocks (run_id, type_name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(run_id, type_name) DO UPDATE SET type_name = excluded.type_name
		RETURNING id, created_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query, block.RunID, block.TypeName, now).
		Scan(&block.ID, &block.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert datablock: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertDatablock(ctx context.Context, block *DatablockRecord) error {
	return s.upsertDatablockWithQuerier(ctx, s.querier(), block)
}

// insertPropertyWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertPropertyWithQuerier(ctx context.Context, q querier, prop *PropertyRecord) error {
	query := `
		INSERT INTO datablock_properties (datablock_id, name, address, type_name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(datablock_id, name) DO UPDATE SET
			address = excluded.address,
			type_name = excluded.type_name
		RETURNING id, created_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query, prop.DatablockID, prop.Name, prop.Address, prop.TypeName, now).
		Scan(&prop.ID, &prop.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) InsertProperty(ctx context.Context, prop *PropertyRecord) error {
	return s.insertPropertyWithQuerier(ctx, s.querier(), prop)
}

// listDatablocksWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listDatablocksWithQuerier(ctx context.Context, q querier, runID int64) ([]*DatablockRecord, error) {
	query := `
		SELECT id, run_id, type_name, created_at
		FROM datablocks
		WHERE run_id = ?
		ORDER BY type_name
	`
	rows, err := q.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	blocks := make([]*DatablockRecord, 0)
	for rows.Next() {
		var block DatablockRecord
		err := rows.Scan(&block.ID, &block.RunID, &block.TypeName, &block.CreatedAt)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, &block)
	}
	return blocks, rows.Err()
}

func (s *SQLiteStorage) ListDatablocks(ctx context.Context, runID int64) ([]*DatablockRecord, error) {
	return s.listDatablocksWithQuerier(ctx, s.querier(), runID)
}

// listPropertiesWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listPropertiesWithQuerier(ctx context.Context, q querier, datablockID int64) ([]*PropertyRecord, error) {
	query := `
		SELECT id, datablock_id, name, address, type_name, created_at
		FROM datablock_properties
		WHERE datablock_id = ?
		ORDER BY name
	`
	rows, err := q.QueryContext(ctx, query, datablockID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	properties := make([]*PropertyRecord, 0)
	for rows.Next() {
		var prop PropertyRecord
		err := rows.Scan(&prop.ID, &prop.DatablockID, &prop.Name, &prop.Address, &prop.TypeName, &prop.CreatedAt)
		if err != nil {
			return nil, err
		}
		properties = append(properties, &prop)
	}
	return properties, rows.Err()
}

func (s *SQLiteStorage) ListProperties(ctx context.Context, datablockID int64) ([]*PropertyRecord, error) {
	return s.listPropertiesWithQuerier(ctx, s.querier(), datablockID)
}

// Status operations

func (s *SQLiteStorage) GetRunStatus(ctx context.Context, dumpPath string) (*RunStatus, error) {
	run, err := s.GetRun(ctx, dumpPath)
	if err != nil {
		return nil, err
	}

	status := &RunStatus{Run: run}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM functions WHERE run_id = ?", run.ID).Scan(&status.FunctionCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM global_values WHERE run_id = ?", run.ID).Scan(&status.ValueCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM datablocks WHERE run_id = ?", run.ID).Scan(&status.DatablockCount)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM datablock_properties p
		JOIN datablocks d ON p.datablock_id = d.id
		WHERE d.run_id = ?
	`, run.ID).Scan(&status.PropertyCount)
	if err != nil {
		return nil, err
	}

	// Calculate database size
	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.DatabaseSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	return status, nil
}

// Transaction implementations delegate to the internal querier helpers.

func (t *sqliteTx) CreateRun(ctx context.Context, run *Run) error {
	return t.storage.createRunWithQuerier(ctx, t.querier(), run)
}

func (t *sqliteTx) GetRun(ctx context.Context, dumpPath string) (*Run, error) {
	return t.storage.getRunWithQuerier(ctx, t.querier(), dumpPath)
}

func (t *sqliteTx) UpdateRun(ctx context.Context, run *Run) error {
	return t.storage.updateRunWithQuerier(ctx, t.querier(), run)
}

func (t *sqliteTx) DeleteRunData(ctx context.Context, runID int64) error {
	return t.storage.deleteRunDataWithQuerier(ctx, t.querier(), runID)
}

func (t *sqliteTx) InsertFunction(ctx context.Context, fn *FunctionRecord) error {
	return t.storage.insertFunctionWithQuerier(ctx, t.querier(), fn)
}

func (t *sqliteTx) ListFunctions(ctx context.Context, runID int64, kind string) ([]*FunctionRecord, error) {
	return t.storage.listFunctionsWithQuerier(ctx, t.querier(), runID, kind)
}

func (t *sqliteTx) SearchFunctions(ctx context.Context, query string, limit int) ([]*FunctionRecord, error) {
	return t.storage.searchFunctionsWithQuerier(ctx, t.querier(), query, limit)
}

func (t *sqliteTx) InsertGlobalValue(ctx context.Context, gv *GlobalValueRecord) error {
	return t.storage.insertGlobalValueWithQuerier(ctx, t.querier(), gv)
}

func (t *sqliteTx) ListGlobalValues(ctx context.Context, runID int64) ([]*GlobalValueRecord, error) {
	return t.storage.listGlobalValuesWithQuerier(ctx, t.querier(), runID)
}

func (t *sqliteTx) UpsertDatablock(ctx context.Context, block *DatablockRecord) error {
	return t.storage.upsertDatablockWithQuerier(ctx, t.querier(), block)
}

func (t *sqliteTx) InsertProperty(ctx context.Context, prop *PropertyRecord) error {
	return t.storage.insertPropertyWithQuerier(ctx, t.querier(), prop)
}

func (t *sqliteTx) ListDatablocks(ctx context.Context, runID int64) ([]*DatablockRecord, error) {
	return t.storage.listDatablocksWithQuerier(ctx, t.querier(), runID)
}

func (t *sqliteTx) ListProperties(ctx context.Context, datablockID int64) ([]*PropertyRecord, error) {
	return t.storage.listPropertiesWithQuerier(ctx, t.querier(), datablockID)
}

func (t *sqliteTx) GetRunStatus(ctx context.Context, dumpPath string) (*RunStatus, error) {
	return t.storage.GetRunStatus(ctx, dumpPath)
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	// We return an error to prevent accidental misuse
	// If savepoints are needed in the future, implement here
	return nil, errors.New("nested transactions not supported")
}
