// Command catalog reconciles a file of freshly observed product listings
// against the catalog store and reports what changed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"supermarket-prices/internal/catalog"
	"supermarket-prices/internal/config"
	"supermarket-prices/internal/database"
	"supermarket-prices/internal/feed"
	"supermarket-prices/internal/model"
	"supermarket-prices/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fileArg := flag.String("file", "", "NDJSON file of observations, one per line")
	dirArg := flag.String("dir", "", "directory of per-product observation JSON files")
	dryRunArg := flag.Bool("dry-run", false, "build and validate products without touching the store")
	reverseArg := flag.Bool("reverse", false, "process observations in reverse order")
	flag.Parse()

	if (*fileArg == "") == (*dirArg == "") {
		return fmt.Errorf("exactly one of -file or -dir is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	observations, err := loadObservations(*fileArg, *dirArg)
	if err != nil {
		return err
	}
	if *reverseArg {
		for i, j := 0, len(observations)-1; i < j; i, j = i+1, j-1 {
			observations[i], observations[j] = observations[j], observations[i]
		}
	}

	overrides, err := feed.LoadOverrides(cfg.Catalog.OverridesPath)
	if err != nil {
		return err
	}
	builder := feed.NewBuilder(overrides, cfg.Catalog.SourceSite)

	now := time.Now()
	products := make([]model.Product, 0, len(observations))
	for _, o := range observations {
		products = append(products, builder.Build(o, now))
	}

	logger.Info().
		Int("observations", len(products)).
		Bool("dry_run", *dryRunArg).
		Msg("observations loaded")

	if *dryRunArg {
		return dryRun(products, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := store.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	gateway := store.NewPostgresGateway(pool, logger)
	reconciler := catalog.NewReconciler(cfg.Catalog.MinPriceDelta, logger)
	updater := catalog.NewUpdater(gateway, reconciler, logger)

	summary := updater.ApplyBatch(ctx, products, cfg.Catalog.BatchConcurrency)
	fmt.Println(summary.String())

	return nil
}

// dryRun logs each built product without store writes, so scrape output can
// be inspected before it is let anywhere near the catalog.
func dryRun(products []model.Product, logger zerolog.Logger) error {
	for _, p := range products {
		event := logger.Info().
			Str("product_id", p.ID).
			Str("name", p.Name).
			Str("size", p.Size).
			Float64("price", p.CurrentPrice).
			Bool("valid", catalog.Validate(p))
		if p.UnitName != "" {
			event = event.Float64("unit_price", p.UnitPrice).Str("unit", p.UnitName)
		}
		event.Msg("observed product")
	}
	return nil
}

func loadObservations(file, dir string) ([]feed.Observation, error) {
	if file != "" {
		return feed.ReadFile(file)
	}
	return feed.ReadDir(dir)
}
