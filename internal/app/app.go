package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/config"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/archive/excel"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/drawsource/natlottery"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/jobqueue"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/repository/postgres"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/interfaces/httpapi"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/resilience"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

// NewHTTPServer wires config into the full service graph and returns the
// server plus a cleanup that releases the database and flushes logs.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, nil, fmt.Errorf("connect database %q: %w", dbNameFromURL(cfg.DBURL), err)
	}

	selections := postgres.NewSelectionRepository(db)
	history := postgres.NewHistoryRepository(db)

	lotteryClient := natlottery.NewClient(natlottery.ClientConfig{
		BaseURL:    cfg.LotteryBaseURL,
		Timeout:    cfg.LotteryTimeout,
		MaxRetries: cfg.LotteryMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LotteryCircuitEnabled,
			FailureThreshold: cfg.LotteryCircuitFailureCount,
			OpenTimeout:      cfg.LotteryCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LotteryCircuitHalfOpenMaxReq,
		},
	})

	var archive usecase.ArchiveWriter
	if cfg.ArchiveEnabled {
		writer, err := excel.NewWriter(cfg.ArchiveDir, appLogger)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("init archive dir %q: %w", cfg.ArchiveDir, err)
		}
		archive = writer
	}

	managerService := usecase.NewManagerService(
		lotteryClient,
		selections,
		history,
		archive,
		selection.DefaultRules(),
		appLogger,
	)
	managerService.SetFetchWorkers(cfg.FetchWorkers)

	reportService := usecase.NewReportService(history, archive, appLogger)

	var publisher httpapi.JobPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, appLogger)
	}

	handler := httpapi.NewHandler(managerService, reportService, publisher, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = db.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
		_ = appLogger.Sync()
	}

	return server, cleanup, nil
}
