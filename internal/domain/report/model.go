package report

// OverviewRow is one historical draw's line in the general overview:
// winnings in pounds, head count, and the even-split per-person figure.
type OverviewRow struct {
	Interval           string
	PlayDate           string
	TotalWinnings      float64
	NumPlayers         int
	WinningPerPerson   float64
	WinningDescription string
}

// PlayerValue distinguishes "did not play" from "played and won nothing".
// Absent players carry no amount at all; zero is a real, played outcome.
type PlayerValue struct {
	Amount  float64
	Present bool
}

func Played(amount float64) PlayerValue {
	return PlayerValue{Amount: amount, Present: true}
}

var Absent = PlayerValue{}

// BreakdownRow is one draw's line in the per-player breakdown. Values holds
// exactly one entry for every player known by the end of the fold.
type BreakdownRow struct {
	Interval string
	PlayDate string
	Values   map[string]PlayerValue
}

// Breakdown is the full per-player table. Players lists the columns in
// first-seen order; every row has a value (possibly Absent) for each.
type Breakdown struct {
	Players []string
	Rows    []BreakdownRow
}

// PlayerSummaryRow is one interval's summed winnings per player. The final
// row of a summary carries the grand totals under the "Sum" interval.
type PlayerSummaryRow struct {
	Interval string
	Totals   map[string]float64
}
