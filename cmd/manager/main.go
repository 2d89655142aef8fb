package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/config"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/archive/excel"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/drawsource/natlottery"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/repository/memory"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/infrastructure/repository/postgres"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/resilience"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/usecase"
)

const dateFormat = "2006-01-02"

// One-shot runner for the weekly draw check. Runs against postgres when
// DB_URL reaches a database, otherwise falls back to the seeded in-memory
// selections so a draw can be checked without any infrastructure.
func main() {
	var (
		dateArg   = flag.String("date", "", "run the draw for the Friday on or before this date (YYYY-MM-DD, default today)")
		fromArg   = flag.String("from", "", "start of a historical range (YYYY-MM-DD, requires -to)")
		toArg     = flag.String("to", "", "end of a historical range (YYYY-MM-DD, requires -from)")
		reportArg = flag.Bool("report", false, "rebuild the cumulative report after running")
		outArg    = flag.String("out", "", "write workbooks under this directory (overrides ARCHIVE_DIR)")
		memArg    = flag.Bool("memory", false, "use the seeded in-memory store instead of postgres")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, *dateArg, *fromArg, *toArg, *reportArg, *outArg, *memArg); err != nil {
		logger.Error("manager run failed", "error", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	cfg config.Config,
	logger *logging.Logger,
	dateArg, fromArg, toArg string,
	produceReport bool,
	outDir string,
	useMemory bool,
) error {
	var (
		selections selection.Repository
		history    result.HistoryRepository
	)

	if useMemory {
		selections = memory.NewSelectionRepository(memory.SeedSelections())
		history = memory.NewHistoryRepository()
	} else {
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DBURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		selections = postgres.NewSelectionRepository(db)
		history = postgres.NewHistoryRepository(db)
	}

	archiveDir := cfg.ArchiveDir
	if outDir != "" {
		archiveDir = outDir
	}
	var archive usecase.ArchiveWriter
	if cfg.ArchiveEnabled || outDir != "" {
		writer, err := excel.NewWriter(archiveDir, logger)
		if err != nil {
			return fmt.Errorf("init archive dir %q: %w", archiveDir, err)
		}
		archive = writer
	}

	lotteryClient := natlottery.NewClient(natlottery.ClientConfig{
		BaseURL:    cfg.LotteryBaseURL,
		Timeout:    cfg.LotteryTimeout,
		MaxRetries: cfg.LotteryMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LotteryCircuitEnabled,
			FailureThreshold: cfg.LotteryCircuitFailureCount,
			OpenTimeout:      cfg.LotteryCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LotteryCircuitHalfOpenMaxReq,
		},
	})

	managerService := usecase.NewManagerService(
		lotteryClient,
		selections,
		history,
		archive,
		selection.DefaultRules(),
		logger,
	)
	managerService.SetFetchWorkers(cfg.FetchWorkers)

	switch {
	case fromArg != "" || toArg != "":
		if fromArg == "" || toArg == "" {
			return fmt.Errorf("-from and -to must be given together")
		}
		from, err := time.Parse(dateFormat, fromArg)
		if err != nil {
			return fmt.Errorf("parse -from: %w", err)
		}
		to, err := time.Parse(dateFormat, toArg)
		if err != nil {
			return fmt.Errorf("parse -to: %w", err)
		}
		entries, err := managerService.RunBetween(ctx, from, to)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			printEntry(entry)
		}
	default:
		runDate := time.Now().UTC()
		if dateArg != "" {
			parsed, err := time.Parse(dateFormat, dateArg)
			if err != nil {
				return fmt.Errorf("parse -date: %w", err)
			}
			runDate = parsed
		}
		entry, err := managerService.RunDraw(ctx, runDate)
		if err != nil {
			return err
		}
		printEntry(entry)
	}

	if produceReport {
		reportService := usecase.NewReportService(history, archive, logger)
		rep, err := reportService.ProduceCumulativeReport(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("cumulative report: %d draws, %d players\n",
			len(rep.Overview), playerCount(rep))
	}

	return nil
}

func printEntry(entry result.HistoryEntry) {
	fmt.Printf("%s (%s)\n", entry.PlayDate, entry.Interval)
	for _, row := range entry.Rows {
		fmt.Printf("  %-12s %-22s %s\n", row.Entry.Name, row.Outcome.MatchType, row.Outcome.Prize.Format())
	}
}

func playerCount(rep usecase.CumulativeReport) int {
	if rep.Breakdown == nil {
		return 0
	}
	return len(rep.Breakdown.Players)
}
