package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"distrobill/internal/config"
	"distrobill/internal/handler"
	"distrobill/internal/logger"
	"distrobill/internal/metrics"
	"distrobill/internal/repository/postgres"
	"distrobill/internal/router"
	"distrobill/internal/service"
	s3storage "distrobill/internal/storage/s3"
)

// @title distrobill API
// @version 1.0
// @description Billing backend for a pharmaceutical distributor: challans, GST invoices, stock and reports.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	recordRepo := postgres.NewRecordRepo(db)
	challanRepo := postgres.NewChallanRepo(db)

	// Initialize storage
	store, err := s3storage.NewBucketStore(ctx, &cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	m := metrics.New(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(challanRepo, recordRepo, store, m, logg)
	resourceSvc := service.NewResourceService(recordRepo, store, m, logg)
	reportSvc := service.NewReportService(recordRepo, challanRepo, logg)
	uploadSvc := service.NewUploadService(store, &cfg.Upload, m, logg)

	// Setup router
	r := router.Setup(router.Options{
		Logger:         logg,
		Metrics:        m,
		MetricsHandler: promhttp.Handler(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, router.Handlers{
		Health:   handler.NewHealthHandler(db),
		Invoice:  handler.NewInvoiceHandler(invoiceSvc),
		Resource: handler.NewResourceHandler(resourceSvc),
		Report:   handler.NewReportHandler(reportSvc),
		Upload:   handler.NewUploadHandler(uploadSvc, cfg.Upload.MaxBytes()),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("server starting", zap.String("addr", srv.Addr), zap.String("environment", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
