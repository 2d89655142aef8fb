package result

import (
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

// Outcome is the per-player result of checking one draw.
type Outcome struct {
	BallsMatched int
	StarsMatched int
	MatchType    string
	Prize        money.Amount
}

// Row pairs a player's entry with their outcome for one draw.
type Row struct {
	Entry   selection.Entry
	Outcome Outcome
}

// Set is the full per-player results table for one draw, in entry order.
type Set []Row

// TotalPrize sums the draw's prizes in minor units.
func (s Set) TotalPrize() money.Amount {
	var total money.Amount
	for _, row := range s {
		total += row.Outcome.Prize
	}
	return total
}
