package storage

import (
	"context"
	"time"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// Function kinds as stored in the functions table.
const (
	FunctionKindGlobal = "global"
	FunctionKindMethod = "method"
)

// Storage defines the interface for persisting and querying scraped catalogs
type Storage interface {
	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, dumpPath string) (*Run, error)
	UpdateRun(ctx context.Context, run *Run) error
	DeleteRunData(ctx context.Context, runID int64) error

	// Function operations (global callables and type-bound methods)
	InsertFunction(ctx context.Context, fn *FunctionRecord) error
	ListFunctions(ctx context.Context, runID int64, kind string) ([]*FunctionRecord, error)
	SearchFunctions(ctx context.Context, query string, limit int) ([]*FunctionRecord, error)

	// Global value operations
	InsertGlobalValue(ctx context.Context, gv *GlobalValueRecord) error
	ListGlobalValues(ctx context.Context, runID int64) ([]*GlobalValueRecord, error)

	// Datablock operations
	UpsertDatablock(ctx context.Context, block *DatablockRecord) error
	InsertProperty(ctx context.Context, prop *PropertyRecord) error
	ListDatablocks(ctx context.Context, runID int64) ([]*DatablockRecord, error)
	ListProperties(ctx context.Context, datablockID int64) ([]*PropertyRecord, error)

	// Status operations
	GetRunStatus(ctx context.Context, dumpPath string) (*RunStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Run represents one scrape of a decompiled dump
type Run struct {
	ID                  int64
	DumpPath            string
	SchemaVersion       string
	GlobalFunctionCount int
	TypeMethodCount     int
	GlobalValueCount    int
	PropertyCount       int
	DiscardedCount      int
	UnresolvedOwners    []string
	DurationMS          int64
	ScrapedAt           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// FunctionRecord is a persisted callable, global or type-bound
type FunctionRecord struct {
	ID          int64
	RunID       int64
	Name        string
	Address     string
	Kind        string // FunctionKindGlobal or FunctionKindMethod
	TypeName    string // Empty for globals
	Description string
	MinArgs     int
	MaxArgs     int
	CreatedAt   time.Time
}

// GlobalValueRecord is a persisted runtime variable
type GlobalValueRecord struct {
	ID        int64
	RunID     int64
	Name      string
	TypeCode  int
	Address   string
	CreatedAt time.Time
}

// DatablockRecord is a persisted datablock type
type DatablockRecord struct {
	ID        int64
	RunID     int64
	TypeName  string
	CreatedAt time.Time
}

// PropertyRecord is a persisted datablock property
type PropertyRecord struct {
	ID          int64
	DatablockID int64
	Name        string
	Address     string
	TypeName    string
	CreatedAt   time.Time
}

// RunStatus contains statistics about a persisted scrape run
type RunStatus struct {
	Run            *Run
	FunctionCount  int
	ValueCount     int
	DatablockCount int
	PropertyCount  int
	DatabaseSizeMB float64
}

// FromFunction converts a catalog function to its persisted form
func FromFunction(fn types.Function, runID int64) *FunctionRecord {
	kind := FunctionKindGlobal
	if fn.IsMethod() {
		kind = FunctionKindMethod
	}
	return &FunctionRecord{
		RunID:       runID,
		Name:        fn.Name,
		Address:     fn.Address,
		Kind:        kind,
		TypeName:    fn.TypeName,
		Description: fn.Description,
		MinArgs:     fn.MinArgs,
		MaxArgs:     fn.MaxArgs,
	}
}

// ToFunction converts a persisted record back to a catalog function
func (f *FunctionRecord) ToFunction() types.Function {
	return types.Function{
		EngineComponent: types.EngineComponent{
			Name:        f.Name,
			Address:     f.Address,
			TypeName:    f.TypeName,
			Description: f.Description,
		},
		MinArgs: f.MinArgs,
		MaxArgs: f.MaxArgs,
	}
}
