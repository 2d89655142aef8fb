package result

import (
	"errors"
	"fmt"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

var ErrInvalidStarCount = errors.New("invalid star match count")

// CountMatches counts how many of the selected picks appear among the
// winning ones. Membership only, not position; a duplicated pick counts
// each time it occurs.
func CountMatches(selected, winning []int) int {
	drawn := make(map[int]struct{}, len(winning))
	for _, n := range winning {
		drawn[n] = struct{}{}
	}

	count := 0
	for _, n := range selected {
		if _, hit := drawn[n]; hit {
			count++
		}
	}
	return count
}

// MatchTypeLabel derives the prize-tier label the lottery uses on its prize
// breakdown pages. When either count is zero only the ball count is named
// ("Match 3" even with a star matched); that mirrors the published tiers,
// where stars alone never change the tier without a winning ball count.
// Star counts outside 0..2 cannot come from a valid draw and fail loudly.
func MatchTypeLabel(ballsMatched, starsMatched int) (string, error) {
	switch {
	case starsMatched == 0 || ballsMatched == 0:
		if starsMatched < 0 || starsMatched > 2 {
			return "", fmt.Errorf("%w: %d", ErrInvalidStarCount, starsMatched)
		}
		return fmt.Sprintf("Match %d", ballsMatched), nil
	case starsMatched == 1:
		return fmt.Sprintf("Match %d + 1 Star", ballsMatched), nil
	case starsMatched == 2:
		return fmt.Sprintf("Match %d + 2 Stars", ballsMatched), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidStarCount, starsMatched)
	}
}

// EvaluateDraw checks every entry against one draw's winning numbers and
// resolves prizes from the draw's table. Output order follows input order,
// one row per entry. Entries are assumed pre-validated; duplicate names are
// a load-time concern and are not re-checked here.
func EvaluateDraw(entries []selection.Entry, winning draw.WinningNumbers, prizes draw.PrizeTable) (Set, error) {
	rows := make(Set, 0, len(entries))
	for _, entry := range entries {
		balls := CountMatches(entry.Numbers, winning.Balls)
		stars := CountMatches(entry.LuckyStars, winning.LuckyStars)

		label, err := MatchTypeLabel(balls, stars)
		if err != nil {
			return nil, fmt.Errorf("derive match type for %s: %w", entry.Name, err)
		}

		rows = append(rows, Row{
			Entry: entry,
			Outcome: Outcome{
				BallsMatched: balls,
				StarsMatched: stars,
				MatchType:    label,
				Prize:        prizes.Prize(label),
			},
		})
	}
	return rows, nil
}
