package postgres

import (
	"time"

	"github.com/lib/pq"
)

type drawResultTableModel struct {
	ID             int64         `db:"id"`
	PlayDate       string        `db:"play_date"`
	IntervalLabel  string        `db:"interval_label"`
	DrawDate       time.Time     `db:"draw_date"`
	DrawNumber     int           `db:"draw_number"`
	Balls          pq.Int64Array `db:"balls"`
	LuckyStars     pq.Int64Array `db:"lucky_stars"`
	RawFields      []byte        `db:"raw_fields"`
	PrizeBreakdown []byte        `db:"prize_breakdown"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type resultRowTableModel struct {
	ID           int64         `db:"id"`
	DrawResultID int64         `db:"draw_result_id"`
	RowIndex     int           `db:"row_index"`
	PlayerName   string        `db:"player_name"`
	Numbers      pq.Int64Array `db:"numbers"`
	LuckyStars   pq.Int64Array `db:"lucky_stars"`
	BallsMatched int           `db:"balls_matched"`
	StarsMatched int           `db:"stars_matched"`
	MatchType    string        `db:"match_type"`
	PrizePence   int64         `db:"prize_pence"`
}
