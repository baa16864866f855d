// Command backfill archives the computed invoice of every stored challan to
// object storage. Existing archives are overwritten.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"distrobill/internal/config"
	"distrobill/internal/logger"
	"distrobill/internal/metrics"
	"distrobill/internal/repository/postgres"
	"distrobill/internal/service"
	s3storage "distrobill/internal/storage/s3"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	store, err := s3storage.NewBucketStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("initializing S3 client: %w", err)
	}

	challanRepo := postgres.NewChallanRepo(db)
	invoiceSvc := service.NewInvoiceService(challanRepo, postgres.NewRecordRepo(db), store,
		metrics.New(cfg.Metrics.Namespace, prometheus.NewRegistry()), logg)

	offset, archived, failed := 0, 0, 0
	for {
		challans, total, err := challanRepo.List(ctx, offset, batchSize)
		if err != nil {
			return fmt.Errorf("listing challans at offset %d: %w", offset, err)
		}

		for i := range challans {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res, err := invoiceSvc.Archive(ctx, challans[i].ID)
			if err != nil {
				logg.Warn("archive failed", zap.Stringer("challan_id", challans[i].ID), zap.Error(err))
				failed++
				continue
			}
			logg.Debug("archived", zap.String("key", res.Key))
			archived++
		}
		offset += batchSize
		if offset >= total {
			break
		}
	}

	logg.Info("backfill complete", zap.Int("archived", archived), zap.Int("failed", failed))
	return nil
}
