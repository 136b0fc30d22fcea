package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"vaultcast/auth"
	"vaultcast/domain"
	grpcserver "vaultcast/infrastructure/grpc/server"
	httpserver "vaultcast/infrastructure/http/server"
	"vaultcast/infrastructure/storage"
	"vaultcast/internal"
	"vaultcast/moderation"
	"vaultcast/runtime"
	"vaultcast/runtime/workers"
	"vaultcast/services"
	"vaultcast/validation"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "VaultCast terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run owns every resource so deferred cleanup happens before the exit code is returned.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	maxUpload, _ := config.MaxUploadBytes()
	multipartMemory, _ := config.MultipartMemoryBytes()
	minFreeDisk, _ := config.MinFreeDiskBytes()

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB) & full-text index (Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, CatalogMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	catalog, err := storage.NewCatalogRepository(db, blugeWriter, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer func() { _ = catalog.Close() }()

	journal := storage.NewSessionJournal(db, logger)
	if interrupted, err := journal.FailInterrupted("interrupted by restart", time.Now().UTC()); err != nil {
		return exitRuntime, fmt.Errorf("session journal recovery failed: %w", err)
	} else if len(interrupted) > 0 {
		logger.Warn("Sessions left unfinished by the previous run", "count", len(interrupted))
	}

	// 3. Storage & domain services
	chunks, err := storage.NewChunkStore(config.ChunkDir, logger)
	if err != nil {
		return exitRuntime, err
	}
	assets, err := storage.NewAssetStore(config.AssetDir, logger)
	if err != nil {
		return exitRuntime, err
	}
	markers := config.Markers()
	if markers == nil {
		markers = moderation.DefaultDenylist
	}
	moderator, err := moderation.NewModerator(markers, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("invalid DANGEROUS_MARKERS: %w", err)
	}

	detector := storage.NewMimeDetector(logger)
	validator := validation.NewValidator(maxUpload, moderator)
	tracker := services.NewSessionTracker(journal, logger)
	queue := runtime.NewMergeQueue(config.MergeQueueSize, logger)
	publisher := services.NewAssetPublisher(assets, catalog, detector, logger)
	mergeService := services.NewMergeService(chunks, tracker, publisher, logger)
	uploadService := services.NewUploadService(validator, chunks, tracker, queue, publisher, logger)
	streamingService := services.NewStreamingService(assets, detector, logger)

	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	var authService *services.AuthService
	if config.AuthEnabled {
		authService = services.NewAuthService(config.AuthUsername, config.AuthPasswordHash, issuer, logger)
	}

	// 4. Supervision: merge workers, janitor, resource monitor, readiness
	monitor := workers.NewResourceMonitor(tracker, config.ChunkDir, config.AssetDir, config.MetricInterval, minFreeDisk, logger)
	ops := grpcserver.NewOpsServer(logger, config.HealthInterval, catalog, queue, monitor)

	sup := workers.NewSupervisor(logger, config.RestartInterval)
	for i := 0; i < config.MergeWorkers; i++ {
		sup.Add(workers.NewMergeWorker(i, queue, mergeService, logger))
	}
	sup.Add(
		workers.NewSessionJanitor(tracker, chunks, config.SessionIdleTimeout, config.JanitorInterval, logger),
		monitor,
		ops,
	)

	// Workers outlive the signal: merges already queued are drained before they stop.
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	supDone := make(chan struct{})
	go func() {
		logger.Info("Starting supervised workers", "merge_workers", config.MergeWorkers)
		sup.Run(workerCtx)
		close(supDone)
	}()

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errChan := make(chan error, 2)

	// 6. Public HTTP server
	handler := httpserver.NewRouter(httpserver.Dependencies{
		Uploads:         uploadService,
		Streaming:       streamingService,
		Catalog:         catalog,
		Auth:            authService,
		Validator:       validator,
		Health:          monitor,
		Issuer:          issuer,
		RequireAuth:     config.AuthEnabled,
		MultipartMemory: multipartMemory,
	}, logger)
	httpServer := httpserver.NewHTTPServer(config.HTTPAddress(), handler)
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr, "max_upload", config.MaxUploadSize, "auth", config.AuthEnabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Ops gRPC server
	listener, err := net.Listen("tcp", config.GRPCAddress())
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", config.GRPCAddress(), err)
	}
	go func() {
		if err := ops.Serve(listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	// 8. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 9. Graceful shutdown: stop intake, drain merges, stop workers, stop ops.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	queue.Close()
	if err := queue.Drain(shutdownCtx); err != nil {
		logger.Warn("Merges still running at shutdown", "queued", queue.Len(), "error", err)
	}
	cancelWorkers()
	<-supDone
	ops.Shutdown()
	logger.Info("Program stopped cleanly", "worker_restarts", sup.Restarts())

	return code, runErr
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// CatalogMapper renders catalog and journal records in the Badger inspector.
func CatalogMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	switch {
	case strings.HasPrefix(key, "asset:"):
		var asset domain.MergedAsset
		if err := json.Unmarshal(val, &asset); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "ASSET"
		row.Detail = fmt.Sprintf("%s (%s, %d bytes) %q", asset.FileName, asset.ContentType, asset.SizeBytes, asset.Title)
	case strings.HasPrefix(key, "session:"):
		var session domain.UploadSession
		if err := json.Unmarshal(val, &session); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.Type = "SESSION"
		row.Detail = fmt.Sprintf("%s %d/%d %s", session.State, session.ReceivedCount(), session.TotalChunks, session.FailureReason)
	case strings.HasPrefix(key, "asset_name:"):
		row.Type = "NAME"
		row.Detail = "asset id " + string(val)
	}
	return row
}
