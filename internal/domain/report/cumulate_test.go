package report

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/result"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

func row(name, matchType, prize string) result.Row {
	return result.Row{
		Entry: selection.Entry{Name: name},
		Outcome: result.Outcome{
			MatchType: matchType,
			Prize:     money.MustParse(prize),
		},
	}
}

func TestFoldOverview_SingleDraw(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{
			Interval: "2020-10-02_to_2020-10-23",
			PlayDate: "Fri 02 Oct 2020",
			Rows: result.Set{
				row("Kobe", "Match 3 + 2 Stars", "£40.10"),
				row("Lebron", "Match 0", "£0.00"),
				row("Shaq", "Match 3", "£4.80"),
				row("Tim", "Match 1 + 2 Stars", "£4.90"),
			},
		},
	}

	rows, err := FoldOverview(history)
	if err != nil {
		t.Fatalf("FoldOverview: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("row count = %d, want 1", len(rows))
	}

	got := rows[0]
	if got.TotalWinnings != 49.80 {
		t.Fatalf("TotalWinnings = %v, want 49.80", got.TotalWinnings)
	}
	if got.NumPlayers != 4 {
		t.Fatalf("NumPlayers = %d, want 4", got.NumPlayers)
	}
	if got.WinningPerPerson != 12.45 {
		t.Fatalf("WinningPerPerson = %v, want 12.45", got.WinningPerPerson)
	}
	if got.WinningDescription != "Match 3 + 2 Stars; Match 3; Match 1 + 2 Stars" {
		t.Fatalf("WinningDescription = %q", got.WinningDescription)
	}
}

func TestFoldOverview_NoWinningsDescriptionEmpty(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{
			PlayDate: "Fri 09 Oct 2020",
			Rows: result.Set{
				row("Kobe", "Match 1", "£0.00"),
				row("Lebron", "Match 0", "£0.00"),
			},
		},
	}

	rows, err := FoldOverview(history)
	if err != nil {
		t.Fatalf("FoldOverview: %v", err)
	}
	if rows[0].WinningDescription != "" {
		t.Fatalf("WinningDescription = %q, want empty", rows[0].WinningDescription)
	}
	if rows[0].TotalWinnings != 0 || rows[0].WinningPerPerson != 0 {
		t.Fatalf("expected zero winnings, got %+v", rows[0])
	}
}

func TestFoldOverview_ZeroPlayersAborts(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{PlayDate: "Fri 02 Oct 2020", Rows: result.Set{row("Kobe", "Match 0", "£0.00")}},
		{PlayDate: "Fri 09 Oct 2020", Rows: result.Set{}},
	}

	_, err := FoldOverview(history)
	if !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("err = %v, want ErrNoPlayers", err)
	}
	if got := err.Error(); !strings.Contains(got, "Fri 09 Oct 2020") {
		t.Fatalf("error %q does not identify the offending draw", got)
	}
}

func TestFoldOverview_PreservesOrderAndIsIdempotent(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{PlayDate: "Fri 02 Oct 2020", Rows: result.Set{row("Kobe", "Match 3", "£4.80")}},
		{PlayDate: "Fri 09 Oct 2020", Rows: result.Set{row("Kobe", "Match 0", "£0.00")}},
		{PlayDate: "Fri 16 Oct 2020", Rows: result.Set{row("Kobe", "Match 2 + 1 Star", "£3.50")}},
	}

	first, err := FoldOverview(history)
	if err != nil {
		t.Fatalf("FoldOverview: %v", err)
	}
	second, err := FoldOverview(history)
	if err != nil {
		t.Fatalf("FoldOverview (rerun): %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-running FoldOverview over unchanged history changed the output")
	}
	for i, want := range []string{"Fri 02 Oct 2020", "Fri 09 Oct 2020", "Fri 16 Oct 2020"} {
		if first[i].PlayDate != want {
			t.Fatalf("row %d play date = %q, want %q", i, first[i].PlayDate, want)
		}
	}
}

func TestFoldPlayerBreakdown_JoinAndLeave(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{
			Interval: "interval-a",
			PlayDate: "Fri 02 Oct 2020",
			Rows: result.Set{
				row("Kobe", "Match 3", "£4.80"),
				row("Shaq", "Match 0", "£0.00"),
			},
		},
		{
			Interval: "interval-a",
			PlayDate: "Fri 09 Oct 2020",
			Rows: result.Set{
				row("Lebron", "Match 3 + 2 Stars", "£40.10"),
				row("Shaq", "Match 0", "£0.00"),
			},
		},
	}

	breakdown, err := FoldPlayerBreakdown(history)
	if err != nil {
		t.Fatalf("FoldPlayerBreakdown: %v", err)
	}

	wantPlayers := []string{"Kobe", "Shaq", "Lebron"}
	if !reflect.DeepEqual(breakdown.Players, wantPlayers) {
		t.Fatalf("Players = %v, want %v (first-seen order)", breakdown.Players, wantPlayers)
	}

	// Every row carries a value for every player ever seen.
	for i, r := range breakdown.Rows {
		if len(r.Values) != len(wantPlayers) {
			t.Fatalf("row %d has %d values, want %d", i, len(r.Values), len(wantPlayers))
		}
	}

	first, second := breakdown.Rows[0], breakdown.Rows[1]

	// Draw 1: Kobe and Shaq each get the even split 4.80/2; Lebron was not
	// yet playing, so draw 1 is backfilled as absent.
	if v := first.Values["Kobe"]; !v.Present || v.Amount != 2.40 {
		t.Fatalf("draw 1 Kobe = %+v, want present 2.40", v)
	}
	if v := first.Values["Shaq"]; !v.Present || v.Amount != 2.40 {
		t.Fatalf("draw 1 Shaq = %+v, want present 2.40", v)
	}
	if v := first.Values["Lebron"]; v.Present {
		t.Fatalf("draw 1 Lebron = %+v, want absent backfill", v)
	}

	// Draw 2: Kobe sat out; absent is not zero.
	if v := second.Values["Kobe"]; v.Present {
		t.Fatalf("draw 2 Kobe = %+v, want absent", v)
	}
	if v := second.Values["Lebron"]; !v.Present || v.Amount != 20.05 {
		t.Fatalf("draw 2 Lebron = %+v, want present 20.05", v)
	}
	if v := second.Values["Shaq"]; !v.Present || v.Amount != 20.05 {
		t.Fatalf("draw 2 Shaq = %+v, want present 20.05 (whole-pot split)", v)
	}
}

func TestFoldPlayerBreakdown_ZeroPlayersAborts(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{PlayDate: "Fri 02 Oct 2020", Rows: result.Set{}},
	}
	if _, err := FoldPlayerBreakdown(history); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("err = %v, want ErrNoPlayers", err)
	}
}

func TestFoldPlayerBreakdown_Idempotent(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{PlayDate: "d1", Rows: result.Set{row("Kobe", "Match 2", "£0.00")}},
		{PlayDate: "d2", Rows: result.Set{row("Kobe", "Match 3", "£4.80"), row("Lebron", "Match 0", "£0.00")}},
	}

	first, err := FoldPlayerBreakdown(history)
	if err != nil {
		t.Fatalf("FoldPlayerBreakdown: %v", err)
	}
	second, err := FoldPlayerBreakdown(history)
	if err != nil {
		t.Fatalf("FoldPlayerBreakdown (rerun): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-running FoldPlayerBreakdown over unchanged history changed the output")
	}
}

func TestSummarizePlayers(t *testing.T) {
	t.Parallel()

	history := []result.HistoryEntry{
		{Interval: "interval-a", PlayDate: "d1", Rows: result.Set{
			row("Kobe", "Match 3", "£4.80"),
			row("Shaq", "Match 0", "£0.00"),
		}},
		{Interval: "interval-a", PlayDate: "d2", Rows: result.Set{
			row("Kobe", "Match 0", "£0.00"),
			row("Shaq", "Match 0", "£0.00"),
		}},
		{Interval: "interval-b", PlayDate: "d3", Rows: result.Set{
			row("Shaq", "Match 3 + 2 Stars", "£40.10"),
		}},
	}

	breakdown, err := FoldPlayerBreakdown(history)
	if err != nil {
		t.Fatalf("FoldPlayerBreakdown: %v", err)
	}

	summary := SummarizePlayers(breakdown)
	if len(summary) != 3 {
		t.Fatalf("summary rows = %d, want 2 intervals + Sum", len(summary))
	}
	if summary[0].Interval != "interval-a" || summary[1].Interval != "interval-b" || summary[2].Interval != "Sum" {
		t.Fatalf("interval order = %v", []string{summary[0].Interval, summary[1].Interval, summary[2].Interval})
	}

	if got := summary[0].Totals["Kobe"]; !approx(got, 2.40) {
		t.Fatalf("interval-a Kobe = %v, want 2.40", got)
	}
	if got := summary[0].Totals["Shaq"]; !approx(got, 2.40) {
		t.Fatalf("interval-a Shaq = %v, want 2.40", got)
	}
	// Kobe sat out interval-b entirely: nothing added, so the grand total
	// equals the interval-a figure.
	if got := summary[1].Totals["Kobe"]; got != 0 {
		t.Fatalf("interval-b Kobe = %v, want 0", got)
	}
	if got := summary[2].Totals["Shaq"]; !approx(got, 42.50) {
		t.Fatalf("Sum Shaq = %v, want 42.50", got)
	}
	if got := summary[2].Totals["Kobe"]; !approx(got, 2.40) {
		t.Fatalf("Sum Kobe = %v, want 2.40", got)
	}
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
