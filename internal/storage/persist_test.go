package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

func persistFixtureCatalog() (*types.Catalog, *types.ScanStats) {
	catalog := types.NewCatalog()

	catalog.AddGlobalFunction(types.Function{
		EngineComponent: types.EngineComponent{Name: "echo", Address: "5A0F00", Description: "prints text"},
		MinArgs:         2, MaxArgs: 2,
	})

	setDamage := types.Function{
		EngineComponent: types.EngineComponent{Name: "setDamage", Address: "5CF230", TypeName: "Player", Description: "applies damage"},
		MinArgs:         3, MaxArgs: 3,
	}
	catalog.AddTypeMethod(setDamage)

	catalog.AddGlobalValue(types.GlobalVariable{
		EngineComponent: types.EngineComponent{Name: "Cl::Fov", Address: "88AE20"},
		TypeCode:        5,
	})

	catalog.AddDatablockProperty("ExplosionData", types.Property{
		EngineComponent: types.EngineComponent{Name: "mass", Address: "6F2A10", TypeName: types.UnresolvedPropertyType},
	})

	stats := types.NewScanStats()
	stats.Matches[types.CategoryGlobalFunction] = 2
	stats.Discarded[types.CategoryGlobalFunction] = 1
	stats.UnresolvedOwners = []string{"ABC123"}
	stats.Duration = 42 * time.Millisecond
	return catalog, stats
}

func TestPersistCatalog(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	catalog, stats := persistFixtureCatalog()

	run, err := PersistCatalog(ctx, store, "/dumps/Tribes2.c", catalog, stats)
	require.NoError(t, err)
	require.NotZero(t, run.ID)

	assert.Equal(t, 1, run.GlobalFunctionCount)
	assert.Equal(t, 1, run.TypeMethodCount)
	assert.Equal(t, 1, run.GlobalValueCount)
	assert.Equal(t, 1, run.PropertyCount)
	assert.Equal(t, 1, run.DiscardedCount)
	assert.Equal(t, []string{"ABC123"}, run.UnresolvedOwners)
	assert.Equal(t, int64(42), run.DurationMS)

	globals, err := store.ListFunctions(ctx, run.ID, FunctionKindGlobal)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "echo", globals[0].Name)

	methods, err := store.ListFunctions(ctx, run.ID, FunctionKindMethod)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "Player", methods[0].TypeName)

	blocks, err := store.ListDatablocks(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	properties, err := store.ListProperties(ctx, blocks[0].ID)
	require.NoError(t, err)
	require.Len(t, properties, 1)
	assert.Equal(t, types.UnresolvedPropertyType, properties[0].TypeName)
}

func TestPersistCatalog_ReplacesPreviousRun(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	catalog, stats := persistFixtureCatalog()

	first, err := PersistCatalog(ctx, store, "/dumps/Tribes2.c", catalog, stats)
	require.NoError(t, err)

	// Re-scrape with a smaller catalog: the run row is reused and old
	// data is gone.
	smaller := types.NewCatalog()
	smaller.AddGlobalFunction(types.Function{
		EngineComponent: types.EngineComponent{Name: "quit", Address: "400000"},
		MinArgs:         1, MaxArgs: 1,
	})

	second, err := PersistCatalog(ctx, store, "/dumps/Tribes2.c", smaller, types.NewScanStats())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.GlobalFunctionCount)
	assert.Equal(t, 0, second.TypeMethodCount)

	globals, err := store.ListFunctions(ctx, second.ID, FunctionKindGlobal)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "quit", globals[0].Name)

	blocks, err := store.ListDatablocks(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestPersistCatalog_SearchableAfterPersist(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	catalog, stats := persistFixtureCatalog()

	_, err := PersistCatalog(ctx, store, "/dumps/Tribes2.c", catalog, stats)
	require.NoError(t, err)

	results, err := store.SearchFunctions(ctx, "damage", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "setDamage", results[0].Name)
}

func TestFromFunctionRoundTrip(t *testing.T) {
	fn := types.Function{
		EngineComponent: types.EngineComponent{Name: "setDamage", Address: "5CF230", TypeName: "Player", Description: "applies damage"},
		MinArgs:         3, MaxArgs: 4,
	}

	record := FromFunction(fn, 7)
	assert.Equal(t, FunctionKindMethod, record.Kind)
	assert.Equal(t, int64(7), record.RunID)

	back := record.ToFunction()
	assert.Equal(t, fn, back)
}
