package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestRun(t *testing.T, store *SQLiteStorage, dumpPath string) *Run {
	t.Helper()
	run := &Run{
		DumpPath:      dumpPath,
		SchemaVersion: CurrentSchemaVersion,
		ScrapedAt:     time.Now(),
	}
	require.NoError(t, store.CreateRun(context.Background(), run))
	require.NotZero(t, run.ID)
	return run
}

func TestCreateAndGetRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	created := &Run{
		DumpPath:         "/dumps/Tribes2.c",
		SchemaVersion:    CurrentSchemaVersion,
		UnresolvedOwners: []string{"ABC123", "DEF456"},
		ScrapedAt:        time.Now(),
	}
	require.NoError(t, store.CreateRun(ctx, created))

	got, err := store.GetRun(ctx, "/dumps/Tribes2.c")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, CurrentSchemaVersion, got.SchemaVersion)
	assert.Equal(t, []string{"ABC123", "DEF456"}, got.UnresolvedOwners)
}

func TestGetRun_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetRun(context.Background(), "/nope.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	run.GlobalFunctionCount = 12
	run.TypeMethodCount = 7
	run.DiscardedCount = 2
	run.DurationMS = 1500
	require.NoError(t, store.UpdateRun(ctx, run))

	got, err := store.GetRun(ctx, "/dumps/Tribes2.c")
	require.NoError(t, err)
	assert.Equal(t, 12, got.GlobalFunctionCount)
	assert.Equal(t, 7, got.TypeMethodCount)
	assert.Equal(t, 2, got.DiscardedCount)
	assert.Equal(t, int64(1500), got.DurationMS)
}

func TestInsertAndListFunctions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	global := &FunctionRecord{
		RunID: run.ID, Name: "echo", Address: "5A0F00",
		Kind: FunctionKindGlobal, Description: "echo(text)",
		MinArgs: 2, MaxArgs: 2,
	}
	require.NoError(t, store.InsertFunction(ctx, global))
	require.NotZero(t, global.ID)

	method := &FunctionRecord{
		RunID: run.ID, Name: "setDamage", Address: "5CF230",
		Kind: FunctionKindMethod, TypeName: "Player",
		Description: "obj.setDamage(amount)", MinArgs: 3, MaxArgs: 3,
	}
	require.NoError(t, store.InsertFunction(ctx, method))

	globals, err := store.ListFunctions(ctx, run.ID, FunctionKindGlobal)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "echo", globals[0].Name)

	methods, err := store.ListFunctions(ctx, run.ID, FunctionKindMethod)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "Player", methods[0].TypeName)
}

func TestSearchFunctions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	functions := []*FunctionRecord{
		{RunID: run.ID, Name: "setDamage", Address: "1", Kind: FunctionKindMethod, TypeName: "Player", Description: "applies damage to the player"},
		{RunID: run.ID, Name: "getDamage", Address: "2", Kind: FunctionKindMethod, TypeName: "Player", Description: "reads the damage level"},
		{RunID: run.ID, Name: "echo", Address: "3", Kind: FunctionKindGlobal, Description: "prints text to the console"},
	}
	for _, fn := range functions {
		require.NoError(t, store.InsertFunction(ctx, fn))
	}

	results, err := store.SearchFunctions(ctx, "damage", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, fn := range results {
		assert.Contains(t, fn.Description, "damage")
	}

	none, err := store.SearchFunctions(ctx, "teleporter", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchFunctions_FTSFollowsDelete(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	fn := &FunctionRecord{RunID: run.ID, Name: "strReplace", Address: "1", Kind: FunctionKindGlobal, Description: "replace occurrences"}
	require.NoError(t, store.InsertFunction(ctx, fn))
	require.NoError(t, store.DeleteRunData(ctx, run.ID))

	results, err := store.SearchFunctions(ctx, "strReplace", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInsertAndListGlobalValues(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	gv := &GlobalValueRecord{RunID: run.ID, Name: "Cl::Fov", TypeCode: 5, Address: "88AE20"}
	require.NoError(t, store.InsertGlobalValue(ctx, gv))

	values, err := store.ListGlobalValues(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "Cl::Fov", values[0].Name)
	assert.Equal(t, 5, values[0].TypeCode)
}

func TestUpsertDatablockAndProperties(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	block := &DatablockRecord{RunID: run.ID, TypeName: "ExplosionData"}
	require.NoError(t, store.UpsertDatablock(ctx, block))
	require.NotZero(t, block.ID)

	// Upserting the same type reuses the existing row.
	again := &DatablockRecord{RunID: run.ID, TypeName: "ExplosionData"}
	require.NoError(t, store.UpsertDatablock(ctx, again))
	assert.Equal(t, block.ID, again.ID)

	prop := &PropertyRecord{DatablockID: block.ID, Name: "mass", Address: "6F2A10", TypeName: "unresolved"}
	require.NoError(t, store.InsertProperty(ctx, prop))

	// Last write wins for a repeated property name, matching catalog
	// assembly semantics.
	replaced := &PropertyRecord{DatablockID: block.ID, Name: "mass", Address: "6F2A99", TypeName: "unresolved"}
	require.NoError(t, store.InsertProperty(ctx, replaced))

	properties, err := store.ListProperties(ctx, block.ID)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, "6F2A99", properties[0].Address)
}

func TestDeleteRunData(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	require.NoError(t, store.InsertFunction(ctx, &FunctionRecord{RunID: run.ID, Name: "echo", Address: "1", Kind: FunctionKindGlobal}))
	require.NoError(t, store.InsertGlobalValue(ctx, &GlobalValueRecord{RunID: run.ID, Name: "v", TypeCode: 5, Address: "2"}))

	block := &DatablockRecord{RunID: run.ID, TypeName: "ItemData"}
	require.NoError(t, store.UpsertDatablock(ctx, block))
	require.NoError(t, store.InsertProperty(ctx, &PropertyRecord{DatablockID: block.ID, Name: "mass", Address: "3", TypeName: "unresolved"}))

	require.NoError(t, store.DeleteRunData(ctx, run.ID))

	functions, err := store.ListFunctions(ctx, run.ID, FunctionKindGlobal)
	require.NoError(t, err)
	assert.Empty(t, functions)

	values, err := store.ListGlobalValues(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, values)

	blocks, err := store.ListDatablocks(ctx, run.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	// The run row itself survives.
	_, err = store.GetRun(ctx, "/dumps/Tribes2.c")
	assert.NoError(t, err)
}

func TestTransactionRollback(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	require.NoError(t, tx.InsertFunction(ctx, &FunctionRecord{RunID: run.ID, Name: "ghost", Address: "1", Kind: FunctionKindGlobal}))
	require.NoError(t, tx.Rollback())

	functions, err := store.ListFunctions(ctx, run.ID, FunctionKindGlobal)
	require.NoError(t, err)
	assert.Empty(t, functions)
}

func TestGetRunStatus(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	run := newTestRun(t, store, "/dumps/Tribes2.c")

	require.NoError(t, store.InsertFunction(ctx, &FunctionRecord{RunID: run.ID, Name: "echo", Address: "1", Kind: FunctionKindGlobal}))
	require.NoError(t, store.InsertGlobalValue(ctx, &GlobalValueRecord{RunID: run.ID, Name: "v", TypeCode: 5, Address: "2"}))

	block := &DatablockRecord{RunID: run.ID, TypeName: "ItemData"}
	require.NoError(t, store.UpsertDatablock(ctx, block))
	require.NoError(t, store.InsertProperty(ctx, &PropertyRecord{DatablockID: block.ID, Name: "mass", Address: "3", TypeName: "unresolved"}))

	status, err := store.GetRunStatus(ctx, "/dumps/Tribes2.c")
	require.NoError(t, err)
	assert.Equal(t, 1, status.FunctionCount)
	assert.Equal(t, 1, status.ValueCount)
	assert.Equal(t, 1, status.DatablockCount)
	assert.Equal(t, 1, status.PropertyCount)
	assert.Positive(t, status.DatabaseSizeMB)
}

func TestGetRunStatus_NotFound(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.GetRunStatus(context.Background(), "/nope.c")
	assert.ErrorIs(t, err, ErrNotFound)
}
