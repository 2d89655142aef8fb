package postgres

import (
	"time"

	"github.com/lib/pq"
)

type selectionTableModel struct {
	ID         int64         `db:"id"`
	PlayerName string        `db:"player_name"`
	Numbers    pq.Int64Array `db:"numbers"`
	LuckyStars pq.Int64Array `db:"lucky_stars"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	DeletedAt  *time.Time    `db:"deleted_at"`
}

func int64sToInts(values pq.Int64Array) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		out = append(out, int(v))
	}
	return out
}

func intsToInt64s(values []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}
