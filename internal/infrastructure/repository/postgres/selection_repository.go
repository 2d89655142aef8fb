package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) ListEntries(ctx context.Context) ([]selection.Entry, error) {
	const query = `
SELECT id, player_name, numbers, lucky_stars, created_at, updated_at, deleted_at
FROM selected_numbers
WHERE deleted_at IS NULL
ORDER BY id`

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select selected numbers: %w", err)
	}

	out := make([]selection.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, selection.Entry{
			Name:       row.PlayerName,
			Numbers:    int64sToInts(row.Numbers),
			LuckyStars: int64sToInts(row.LuckyStars),
		})
	}

	return out, nil
}

func (r *SelectionRepository) UpsertEntries(ctx context.Context, items []selection.Entry) error {
	if len(items) == 0 {
		return nil
	}

	const query = `
INSERT INTO selected_numbers (player_name, numbers, lucky_stars)
VALUES ($1, $2, $3)
ON CONFLICT (player_name) WHERE deleted_at IS NULL
DO UPDATE SET
    numbers = EXCLUDED.numbers,
    lucky_stars = EXCLUDED.lucky_stars,
    updated_at = NOW()`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert selected numbers: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, query, item.Name, intsToInt64s(item.Numbers), intsToInt64s(item.LuckyStars)); err != nil {
			return fmt.Errorf("upsert selected numbers for %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert selected numbers tx: %w", err)
	}

	return nil
}
