package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Ragora/T2-EngineScraper/internal/config"
	"github.com/Ragora/T2-EngineScraper/internal/render"
	"github.com/Ragora/T2-EngineScraper/internal/scanner"
	"github.com/Ragora/T2-EngineScraper/internal/storage"
	"github.com/Ragora/T2-EngineScraper/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "HCL lookup-table override file (default: compiled-in Tribes 2 tables)")
		outPath     = flag.String("out", "out.txt", "output path for the rendered DokuWiki reference page")
		dbPath      = flag.String("db", "", "SQLite database path; empty skips persistence")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("T2 Engine Scraper\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	log.SetOutput(os.Stderr)

	if flag.NArg() != 1 {
		log.Fatalf("usage: t2scrape [flags] <dump-file>")
	}
	dumpPath := flag.Arg(0)

	tables := config.Default()
	if *configPath != "" {
		var err error
		tables, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	scan, err := scanner.New(tables)
	if err != nil {
		log.Fatalf("Failed to create scanner: %v", err)
	}

	catalog, stats, err := scan.ScrapeFile(dumpPath)
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}

	log.Printf("Scraped %s in %s: %d global functions, %d type methods, %d global values, %d datablocks (%d properties)",
		dumpPath, stats.Duration,
		catalog.GlobalFunctionCount(), catalog.TypeMethodTotal(),
		len(catalog.GlobalValues), len(catalog.Datablocks), catalog.PropertyTotal())

	reportDiscards(stats)

	if err := writePage(tables, catalog, *outPath); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	log.Printf("Reference page written to %s", *outPath)

	if *dbPath != "" {
		if err := persist(*dbPath, dumpPath, catalog, stats); err != nil {
			log.Fatalf("Persist failed: %v", err)
		}
		log.Printf("Catalog persisted to %s", *dbPath)
	}
}

func reportDiscards(stats *types.ScanStats) {
	for _, category := range types.Categories {
		if n := stats.Discarded[category]; n > 0 {
			log.Printf("Discarded %d malformed %s matches", n, category)
		}
	}
	if len(stats.UnresolvedOwners) > 0 {
		log.Printf("Unresolved datablock owners (add to the type table): %v", stats.UnresolvedOwners)
	}
}

func writePage(tables *config.Tables, catalog *types.Catalog, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if err := render.New(tables).WritePage(f, catalog); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func persist(dbPath, dumpPath string, catalog *types.Catalog, stats *types.ScanStats) error {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	_, err = storage.PersistCatalog(context.Background(), store, dumpPath, catalog, stats)
	return err
}
