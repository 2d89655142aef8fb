package result

import (
	"context"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
)

// HistoryEntry is one persisted draw's results with the labels the archive
// keys it by.
type HistoryEntry struct {
	Interval string
	PlayDate string
	Rows     Set
}

// HistoryRepository is the append-only store of per-draw result sets. List
// returns entries oldest first; aggregation depends on that order.
type HistoryRepository interface {
	AppendDraw(ctx context.Context, entry HistoryEntry, drawResult draw.Result, prizes draw.PrizeTable) error
	ListHistory(ctx context.Context) ([]HistoryEntry, error)
}
