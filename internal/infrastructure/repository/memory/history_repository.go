package memory

import (
	"context"
	"sync"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
)

// HistoryRepository keeps persisted draw results in insertion order, so
// ListHistory returns them oldest first as the aggregation requires.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []result.HistoryEntry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

func (r *HistoryRepository) AppendDraw(_ context.Context, entry result.HistoryEntry, _ draw.Result, _ draw.PrizeTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := result.HistoryEntry{
		Interval: entry.Interval,
		PlayDate: entry.PlayDate,
		Rows:     append(result.Set(nil), entry.Rows...),
	}

	for idx := range r.entries {
		if r.entries[idx].PlayDate == entry.PlayDate {
			r.entries[idx] = stored
			return nil
		}
	}
	r.entries = append(r.entries, stored)

	return nil
}

func (r *HistoryRepository) ListHistory(_ context.Context) ([]result.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.HistoryEntry, 0, len(r.entries))
	for _, item := range r.entries {
		out = append(out, result.HistoryEntry{
			Interval: item.Interval,
			PlayDate: item.PlayDate,
			Rows:     append(result.Set(nil), item.Rows...),
		})
	}

	return out, nil
}
