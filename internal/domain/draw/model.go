package draw

import (
	"errors"
	"fmt"
	"time"

	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/money"
)

var (
	ErrMissingField  = errors.New("draw result field missing")
	ErrDateNotFound  = errors.New("draw date not found in history")
	ErrAmbiguousDate = errors.New("draw date maps to multiple draws")
)

// WinningNumbers holds one draw's winning selection, split into the five
// main balls and the two lucky stars.
type WinningNumbers struct {
	Balls      []int
	LuckyStars []int
}

// PrizeTable maps a match-type label to the prize for one specific draw.
// Tiers that paid nothing are simply absent.
type PrizeTable map[string]money.Amount

// Prize resolves a label to its amount. Absence is the common case (most
// rows match nothing) and resolves to zero, never an error.
func (t PrizeTable) Prize(label string) money.Amount {
	return t[label]
}

// Result is one raw draw-history record as supplied by the draw-data
// provider. Fields preserves the provider's original column order and
// values so the archive can store the draw exactly as published.
type Result struct {
	DrawDate   time.Time
	DrawNumber int
	Balls      []int
	LuckyStars []int
	Fields     []Field
}

// Field is a single named value from the raw draw record.
type Field struct {
	Name  string
	Value string
}

// WinningNumbers builds the immutable winning-number value for matching.
func (r Result) WinningNumbers() (WinningNumbers, error) {
	if len(r.Balls) == 0 {
		return WinningNumbers{}, fmt.Errorf("%w: balls", ErrMissingField)
	}
	if len(r.LuckyStars) == 0 {
		return WinningNumbers{}, fmt.Errorf("%w: lucky stars", ErrMissingField)
	}

	balls := make([]int, len(r.Balls))
	copy(balls, r.Balls)
	stars := make([]int, len(r.LuckyStars))
	copy(stars, r.LuckyStars)

	return WinningNumbers{Balls: balls, LuckyStars: stars}, nil
}

// ExtractResult finds the single record for drawDate in a provider history
// dump. Zero or multiple matches are provider-data faults; the caller never
// retries or guesses.
func ExtractResult(drawDate time.Time, history []Result) (Result, error) {
	target := drawDate.Truncate(24 * time.Hour)

	var found Result
	matches := 0
	for _, record := range history {
		if record.DrawDate.Truncate(24 * time.Hour).Equal(target) {
			found = record
			matches++
		}
	}

	switch matches {
	case 0:
		return Result{}, fmt.Errorf("%w: %s", ErrDateNotFound, drawDate.Format("02-01-2006"))
	case 1:
		return found, nil
	default:
		return Result{}, fmt.Errorf("%w: %s (%d records)", ErrAmbiguousDate, drawDate.Format("02-01-2006"), matches)
	}
}
