package usecase

import (
	"context"
	"fmt"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/report"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/platform/logging"
)

// ReportService folds the full draw history into the cumulative summary
// tables. Each run re-reads everything and recomputes from scratch, so a
// rerun over unchanged history always produces the same report.
type ReportService struct {
	history result.HistoryRepository
	archive ArchiveWriter
	logger  *logging.Logger
}

func NewReportService(history result.HistoryRepository, archive ArchiveWriter, logger *logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{
		history: history,
		archive: archive,
		logger:  logger,
	}
}

// ProduceCumulativeReport builds overview, per-player breakdown and
// interval summary from the ordered history and hands them to the archive.
// Any malformed historical record aborts the whole report; a silently
// partial summary would be worse than a failed run.
func (s *ReportService) ProduceCumulativeReport(ctx context.Context) (CumulativeReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReportService.ProduceCumulativeReport")
	defer span.End()

	history, err := s.history.ListHistory(ctx)
	if err != nil {
		return CumulativeReport{}, fmt.Errorf("list draw history: %w", err)
	}
	if len(history) == 0 {
		return CumulativeReport{}, fmt.Errorf("%w: draw history is empty", ErrNotFound)
	}

	overview, err := report.FoldOverview(history)
	if err != nil {
		return CumulativeReport{}, fmt.Errorf("fold overview: %w", err)
	}

	breakdown, err := report.FoldPlayerBreakdown(history)
	if err != nil {
		return CumulativeReport{}, fmt.Errorf("fold player breakdown: %w", err)
	}

	rep := CumulativeReport{
		Overview:  overview,
		Breakdown: breakdown,
		Summary:   report.SummarizePlayers(breakdown),
	}

	if s.archive != nil {
		if err := s.archive.WriteCumulativeReport(ctx, rep); err != nil {
			return CumulativeReport{}, fmt.Errorf("write cumulative report: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "cumulative report produced",
		"draws", len(overview), "players", len(breakdown.Players))
	return rep, nil
}
