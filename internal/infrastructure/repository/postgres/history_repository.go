package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

// HistoryRepository persists one draw_results row per draw plus its
// per-player result rows. Re-running a draw replaces that draw's rows.
type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) AppendDraw(ctx context.Context, entry result.HistoryEntry, drawResult draw.Result, prizes draw.PrizeTable) error {
	rawFields, err := sonic.Marshal(drawResult.Fields)
	if err != nil {
		return fmt.Errorf("marshal raw draw fields: %w", err)
	}
	prizeBreakdown, err := sonic.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("marshal prize breakdown: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append draw: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertDraw = `
INSERT INTO draw_results (play_date, interval_label, draw_date, draw_number, balls, lucky_stars, raw_fields, prize_breakdown)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (play_date)
DO UPDATE SET
    interval_label = EXCLUDED.interval_label,
    draw_date = EXCLUDED.draw_date,
    draw_number = EXCLUDED.draw_number,
    balls = EXCLUDED.balls,
    lucky_stars = EXCLUDED.lucky_stars,
    raw_fields = EXCLUDED.raw_fields,
    prize_breakdown = EXCLUDED.prize_breakdown,
    updated_at = NOW()
RETURNING id`

	var drawID int64
	if err := tx.GetContext(ctx, &drawID, upsertDraw,
		entry.PlayDate, entry.Interval, drawResult.DrawDate, drawResult.DrawNumber,
		intsToInt64s(drawResult.Balls), intsToInt64s(drawResult.LuckyStars),
		rawFields, prizeBreakdown,
	); err != nil {
		return fmt.Errorf("upsert draw result %q: %w", entry.PlayDate, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM result_rows WHERE draw_result_id = $1`, drawID); err != nil {
		return fmt.Errorf("clear result rows for draw %q: %w", entry.PlayDate, err)
	}

	const insertRow = `
INSERT INTO result_rows (draw_result_id, row_index, player_name, numbers, lucky_stars, balls_matched, stars_matched, match_type, prize_pence)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for idx, row := range entry.Rows {
		if _, err := tx.ExecContext(ctx, insertRow,
			drawID, idx, row.Entry.Name,
			intsToInt64s(row.Entry.Numbers), intsToInt64s(row.Entry.LuckyStars),
			row.Outcome.BallsMatched, row.Outcome.StarsMatched, row.Outcome.MatchType, int64(row.Outcome.Prize),
		); err != nil {
			return fmt.Errorf("insert result row for %q on %q: %w", row.Entry.Name, entry.PlayDate, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append draw tx: %w", err)
	}

	return nil
}

func (r *HistoryRepository) ListHistory(ctx context.Context) ([]result.HistoryEntry, error) {
	const selectDraws = `
SELECT id, play_date, interval_label, draw_date, draw_number, balls, lucky_stars, raw_fields, prize_breakdown, created_at, updated_at
FROM draw_results
ORDER BY draw_date`

	var draws []drawResultTableModel
	if err := r.db.SelectContext(ctx, &draws, selectDraws); err != nil {
		return nil, fmt.Errorf("select draw results: %w", err)
	}
	if len(draws) == 0 {
		return nil, nil
	}

	const selectRows = `
SELECT id, draw_result_id, row_index, player_name, numbers, lucky_stars, balls_matched, stars_matched, match_type, prize_pence
FROM result_rows
ORDER BY draw_result_id, row_index`

	var rows []resultRowTableModel
	if err := r.db.SelectContext(ctx, &rows, selectRows); err != nil {
		return nil, fmt.Errorf("select result rows: %w", err)
	}

	rowsByDraw := make(map[int64]result.Set, len(draws))
	for _, row := range rows {
		rowsByDraw[row.DrawResultID] = append(rowsByDraw[row.DrawResultID], result.Row{
			Entry: selection.Entry{
				Name:       row.PlayerName,
				Numbers:    int64sToInts(row.Numbers),
				LuckyStars: int64sToInts(row.LuckyStars),
			},
			Outcome: result.Outcome{
				BallsMatched: row.BallsMatched,
				StarsMatched: row.StarsMatched,
				MatchType:    row.MatchType,
				Prize:        money.Amount(row.PrizePence),
			},
		})
	}

	out := make([]result.HistoryEntry, 0, len(draws))
	for _, item := range draws {
		out = append(out, result.HistoryEntry{
			Interval: item.IntervalLabel,
			PlayDate: item.PlayDate,
			Rows:     rowsByDraw[item.ID],
		})
	}

	return out, nil
}
