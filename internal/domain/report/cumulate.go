package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
)

var ErrNoPlayers = errors.New("draw has no players")

// FoldOverview walks the ordered draw history and emits one overview row
// per draw. Prizes are summed in minor units and divided once at the end of
// each draw, so no float rounding accumulates. A draw with zero rows is a
// corrupt record, not an empty result, and aborts the whole fold; a
// partial overview is worse than none.
func FoldOverview(history []result.HistoryEntry) ([]OverviewRow, error) {
	rows := make([]OverviewRow, 0, len(history))
	for _, entry := range history {
		if len(entry.Rows) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPlayers, entry.PlayDate)
		}

		total := entry.Rows.TotalPrize().Pounds()
		numPlayers := len(entry.Rows)

		descriptions := make([]string, 0, len(entry.Rows))
		for _, row := range entry.Rows {
			if row.Outcome.Prize > 0 {
				descriptions = append(descriptions, row.Outcome.MatchType)
			}
		}

		rows = append(rows, OverviewRow{
			Interval:           entry.Interval,
			PlayDate:           entry.PlayDate,
			TotalWinnings:      total,
			NumPlayers:         numPlayers,
			WinningPerPerson:   total / float64(numPlayers),
			WinningDescription: strings.Join(descriptions, "; "),
		})
	}
	return rows, nil
}

// FoldPlayerBreakdown walks the same history and builds the per-player
// table. The column set grows as players are first seen; rows emitted
// before a player existed are backfilled with Absent so every column is the
// same length. A participant's value is the draw's whole-pot even split
// (total winnings over head count), the same figure for everyone who
// played that draw. That is how the syndicate has always divided winnings,
// so the per-player column deliberately repeats the overview's per-person
// number rather than each player's own prize.
func FoldPlayerBreakdown(history []result.HistoryEntry) (*Breakdown, error) {
	breakdown := &Breakdown{
		Players: make([]string, 0, 8),
		Rows:    make([]BreakdownRow, 0, len(history)),
	}
	known := make(map[string]struct{}, 8)

	for _, entry := range history {
		if len(entry.Rows) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPlayers, entry.PlayDate)
		}

		participants := make(map[string]struct{}, len(entry.Rows))
		for _, row := range entry.Rows {
			name := row.Entry.Name
			participants[name] = struct{}{}
			if _, seen := known[name]; !seen {
				known[name] = struct{}{}
				breakdown.Players = append(breakdown.Players, name)
				for i := range breakdown.Rows {
					breakdown.Rows[i].Values[name] = Absent
				}
			}
		}

		perPerson := entry.Rows.TotalPrize().Pounds() / float64(len(entry.Rows))

		values := make(map[string]PlayerValue, len(breakdown.Players))
		for _, name := range breakdown.Players {
			if _, played := participants[name]; played {
				values[name] = Played(perPerson)
			} else {
				values[name] = Absent
			}
		}

		breakdown.Rows = append(breakdown.Rows, BreakdownRow{
			Interval: entry.Interval,
			PlayDate: entry.PlayDate,
			Values:   values,
		})
	}

	return breakdown, nil
}

// SummarizePlayers groups breakdown rows by interval (in first-seen order),
// sums each player's played values within the interval, and appends a
// grand-total row labelled "Sum". Absent values contribute nothing.
func SummarizePlayers(breakdown *Breakdown) []PlayerSummaryRow {
	if breakdown == nil || len(breakdown.Rows) == 0 {
		return nil
	}

	order := make([]string, 0, 8)
	byInterval := make(map[string]map[string]float64, 8)
	for _, row := range breakdown.Rows {
		totals, ok := byInterval[row.Interval]
		if !ok {
			totals = make(map[string]float64, len(breakdown.Players))
			byInterval[row.Interval] = totals
			order = append(order, row.Interval)
		}
		for _, name := range breakdown.Players {
			if value := row.Values[name]; value.Present {
				totals[name] += value.Amount
			}
		}
	}

	summary := make([]PlayerSummaryRow, 0, len(order)+1)
	grand := make(map[string]float64, len(breakdown.Players))
	for _, interval := range order {
		totals := byInterval[interval]
		for name, amount := range totals {
			grand[name] += amount
		}
		summary = append(summary, PlayerSummaryRow{Interval: interval, Totals: totals})
	}
	summary = append(summary, PlayerSummaryRow{Interval: "Sum", Totals: grand})

	return summary
}
