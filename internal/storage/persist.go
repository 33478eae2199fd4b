package storage

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

// PersistCatalog writes a finished catalog to storage under a single run
// row keyed by dump path. Re-persisting the same path replaces the
// previous run's data. Each entity category is written in its own batch
// transaction; categories are independent so they persist concurrently.
func PersistCatalog(ctx context.Context, store Storage, dumpPath string, catalog *types.Catalog, stats *types.ScanStats) (*Run, error) {
	run, err := prepareRun(ctx, store, dumpPath)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return persistFunctions(gctx, store, run.ID, catalog.GlobalFunctions)
	})
	g.Go(func() error {
		return persistTypeMethods(gctx, store, run.ID, catalog.TypeMethods)
	})
	g.Go(func() error {
		return persistGlobalValues(gctx, store, run.ID, catalog.GlobalValues)
	})
	g.Go(func() error {
		return persistDatablocks(gctx, store, run.ID, catalog.Datablocks)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to persist catalog: %w", err)
	}

	discarded := 0
	for _, n := range stats.Discarded {
		discarded += n
	}

	run.SchemaVersion = CurrentSchemaVersion
	run.GlobalFunctionCount = catalog.GlobalFunctionCount()
	run.TypeMethodCount = catalog.TypeMethodTotal()
	run.GlobalValueCount = len(catalog.GlobalValues)
	run.PropertyCount = catalog.PropertyTotal()
	run.DiscardedCount = discarded
	run.UnresolvedOwners = stats.UnresolvedOwners
	run.DurationMS = stats.Duration.Milliseconds()
	run.ScrapedAt = stats.StartTime

	if err := store.UpdateRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// prepareRun finds or creates the run row for a dump path and clears any
// data left from a previous scrape of the same dump.
func prepareRun(ctx context.Context, store Storage, dumpPath string) (*Run, error) {
	run, err := store.GetRun(ctx, dumpPath)
	if errors.Is(err, ErrNotFound) {
		run = &Run{DumpPath: dumpPath, SchemaVersion: CurrentSchemaVersion}
		if err := store.CreateRun(ctx, run); err != nil {
			return nil, err
		}
		return run, nil
	}
	if err != nil {
		return nil, err
	}

	if err := store.DeleteRunData(ctx, run.ID); err != nil {
		return nil, err
	}
	return run, nil
}

func persistFunctions(ctx context.Context, store Storage, runID int64, functions []types.Function) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, fn := range functions {
		if err := tx.InsertFunction(ctx, FromFunction(fn, runID)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func persistTypeMethods(ctx context.Context, store Storage, runID int64, methods map[string][]types.Function) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, group := range methods {
		for _, fn := range group {
			if err := tx.InsertFunction(ctx, FromFunction(fn, runID)); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

func persistGlobalValues(ctx context.Context, store Storage, runID int64, values []types.GlobalVariable) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, gv := range values {
		record := &GlobalValueRecord{
			RunID:    runID,
			Name:     gv.Name,
			TypeCode: gv.TypeCode,
			Address:  gv.Address,
		}
		if err := tx.InsertGlobalValue(ctx, record); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func persistDatablocks(ctx context.Context, store Storage, runID int64, datablocks map[string]*types.Datablock) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for typeName, block := range datablocks {
		record := &DatablockRecord{RunID: runID, TypeName: typeName}
		if err := tx.UpsertDatablock(ctx, record); err != nil {
			return err
		}

		for _, prop := range block.Properties {
			propRecord := &PropertyRecord{
				DatablockID: record.ID,
				Name:        prop.Name,
				Address:     prop.Address,
				TypeName:    prop.TypeName,
			}
			if err := tx.InsertProperty(ctx, propRecord); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}
