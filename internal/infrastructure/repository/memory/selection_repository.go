package memory

import (
	"context"
	"sync"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

type SelectionRepository struct {
	mu      sync.RWMutex
	entries []selection.Entry
}

func NewSelectionRepository(entries []selection.Entry) *SelectionRepository {
	out := make([]selection.Entry, len(entries))
	copy(out, entries)

	return &SelectionRepository{entries: out}
}

func (r *SelectionRepository) ListEntries(_ context.Context) ([]selection.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.Entry, 0, len(r.entries))
	for _, item := range r.entries {
		out = append(out, cloneEntry(item))
	}

	return out, nil
}

func (r *SelectionRepository) UpsertEntries(_ context.Context, items []selection.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.Name == "" {
			continue
		}

		updated := false
		for idx := range r.entries {
			if r.entries[idx].Name == item.Name {
				r.entries[idx] = cloneEntry(item)
				updated = true
				break
			}
		}
		if !updated {
			r.entries = append(r.entries, cloneEntry(item))
		}
	}

	return nil
}

func cloneEntry(item selection.Entry) selection.Entry {
	out := selection.Entry{Name: item.Name}
	out.Numbers = append(out.Numbers, item.Numbers...)
	out.LuckyStars = append(out.LuckyStars, item.LuckyStars...)

	return out
}
