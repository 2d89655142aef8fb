package usecase

import (
	"context"
	"time"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/report"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
)

// DrawDataProvider supplies one draw's raw result and prize table for a
// resolved draw date. Providers fail when the date has no draw or maps to
// several; the services never retry or guess around that.
type DrawDataProvider interface {
	DrawInformation(ctx context.Context, drawDate time.Time) (draw.Result, draw.PrizeTable, error)
}

// ArchiveWriter is the workbook/report sink. Write failures surface to the
// caller; nothing is retried here.
type ArchiveWriter interface {
	WriteDrawResult(ctx context.Context, entry result.HistoryEntry, drawResult draw.Result, prizes draw.PrizeTable) error
	WriteCumulativeReport(ctx context.Context, rep CumulativeReport) error
}

// CumulativeReport bundles the three summary tables produced from the full
// draw history.
type CumulativeReport struct {
	Overview  []report.OverviewRow
	Breakdown *report.Breakdown
	Summary   []report.PlayerSummaryRow
}
