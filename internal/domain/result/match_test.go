package result

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/draw"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

func TestCountMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		selected []int
		winning  []int
		want     int
	}{
		{name: "three of three", selected: []int{1, 7, 9}, winning: []int{1, 7, 9, 20, 30}, want: 3},
		{name: "none", selected: []int{2, 4, 6}, winning: []int{1, 7, 9, 20, 30}, want: 0},
		{name: "order irrelevant", selected: []int{30, 1}, winning: []int{1, 7, 9, 20, 30}, want: 2},
		{name: "duplicate picks count individually", selected: []int{7, 7, 9}, winning: []int{1, 7, 9, 20, 30}, want: 3},
		{name: "empty selection", selected: nil, winning: []int{1, 2}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := CountMatches(tc.selected, tc.winning); got != tc.want {
				t.Fatalf("CountMatches = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestMatchTypeLabel_Grid(t *testing.T) {
	t.Parallel()

	for balls := 0; balls <= 5; balls++ {
		for stars := 0; stars <= 2; stars++ {
			label, err := MatchTypeLabel(balls, stars)
			if err != nil {
				t.Fatalf("MatchTypeLabel(%d, %d): %v", balls, stars, err)
			}
			if !strings.Contains(label, fmt.Sprintf("Match %d", balls)) {
				t.Fatalf("MatchTypeLabel(%d, %d) = %q, missing ball count", balls, stars, label)
			}
			switch {
			case balls == 0 || stars == 0:
				if strings.Contains(label, "Star") {
					t.Fatalf("MatchTypeLabel(%d, %d) = %q, expected no star suffix", balls, stars, label)
				}
			case stars == 1:
				if !strings.HasSuffix(label, "+ 1 Star") {
					t.Fatalf("MatchTypeLabel(%d, 1) = %q, want singular star suffix", balls, label)
				}
			case stars == 2:
				if !strings.HasSuffix(label, "+ 2 Stars") {
					t.Fatalf("MatchTypeLabel(%d, 2) = %q, want plural star suffix", balls, label)
				}
			}
		}
	}
}

func TestMatchTypeLabel_InvalidStars(t *testing.T) {
	t.Parallel()

	for _, stars := range []int{-1, 3, 7} {
		for _, balls := range []int{0, 3} {
			if _, err := MatchTypeLabel(balls, stars); !errors.Is(err, ErrInvalidStarCount) {
				t.Fatalf("MatchTypeLabel(%d, %d) err = %v, want ErrInvalidStarCount", balls, stars, err)
			}
		}
	}
}

func TestEvaluateDraw(t *testing.T) {
	t.Parallel()

	winning := draw.WinningNumbers{
		Balls:      []int{1, 7, 9, 20, 30},
		LuckyStars: []int{2, 11},
	}
	prizes := draw.PrizeTable{
		"Match 3 + 2 Stars": money.MustParse("£40.10"),
		"Match 3":           money.MustParse("£4.80"),
	}
	entries := []selection.Entry{
		{Name: "Kobe", Numbers: []int{1, 7, 9, 40, 50}, LuckyStars: []int{2, 11}},
		{Name: "Lebron", Numbers: []int{1, 7, 9, 41, 42}, LuckyStars: []int{3, 4}},
		{Name: "Shaq", Numbers: []int{2, 4, 6, 8, 10}, LuckyStars: []int{2, 11}},
	}

	rows, err := EvaluateDraw(entries, winning, prizes)
	if err != nil {
		t.Fatalf("EvaluateDraw: %v", err)
	}

	if len(rows) != len(entries) {
		t.Fatalf("row count = %d, want %d", len(rows), len(entries))
	}
	for i, row := range rows {
		if row.Entry.Name != entries[i].Name {
			t.Fatalf("row %d is %s, want input order preserved", i, row.Entry.Name)
		}
	}

	want := []Outcome{
		{BallsMatched: 3, StarsMatched: 2, MatchType: "Match 3 + 2 Stars", Prize: 4010},
		{BallsMatched: 3, StarsMatched: 0, MatchType: "Match 3", Prize: 480},
		{BallsMatched: 0, StarsMatched: 2, MatchType: "Match 0", Prize: 0},
	}
	for i, outcome := range want {
		if rows[i].Outcome != outcome {
			t.Fatalf("row %d outcome = %+v, want %+v", i, rows[i].Outcome, outcome)
		}
	}
}

func TestSet_TotalPrize(t *testing.T) {
	t.Parallel()

	set := Set{
		{Outcome: Outcome{Prize: 4010}},
		{Outcome: Outcome{Prize: 0}},
		{Outcome: Outcome{Prize: 480}},
		{Outcome: Outcome{Prize: 490}},
	}
	if got := set.TotalPrize(); got != 4980 {
		t.Fatalf("TotalPrize = %d, want 4980", got)
	}
}
