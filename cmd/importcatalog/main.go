// Command importcatalog loads a product master spreadsheet into products records.
// Usage: go run ./cmd/importcatalog [-dry-run] products.xlsx
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"distrobill/internal/catalog"
	"distrobill/internal/config"
	"distrobill/internal/logger"
	"distrobill/internal/repository/postgres"
)

const batchSize = 500

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dryRun := flag.Bool("dry-run", false, "parse the workbook without writing records")
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: importcatalog [-dry-run] <products.xlsx>")
	}
	xlsxPath := flag.Arg(0)

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logg, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	products, skipped, err := catalog.ReadProducts(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", xlsxPath, err)
	}
	for _, s := range skipped {
		logg.Warn("skipping row", zap.Int("row", s.Row), zap.String("reason", s.Reason))
	}
	logg.Info("catalog parsed", zap.Int("products", len(products)), zap.Int("skipped", len(skipped)))
	if *dryRun {
		return nil
	}

	records, err := catalog.Records(products)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()
	repo := postgres.NewRecordRepo(db)

	ctx := context.Background()
	for i := 0; i < len(records); i += batchSize {
		end := min(i+batchSize, len(records))
		if err := repo.CreateBatch(ctx, records[i:end]); err != nil {
			return fmt.Errorf("inserting batch at offset %d: %w", i, err)
		}
	}

	logg.Info("catalog imported", zap.Int("records", len(records)),
		zap.Int("batches", (len(records)+batchSize-1)/batchSize))
	return nil
}
