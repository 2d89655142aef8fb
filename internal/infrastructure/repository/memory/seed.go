package memory

import (
	"github.com/ghagintonbear/lotto-manager-gcp/internal/domain/selection"
)

// SeedSelections returns a small syndicate used by dev runs and tests.
func SeedSelections() []selection.Entry {
	return []selection.Entry{
		{Name: "Kobe", Numbers: []int{3, 10, 29, 36, 41}, LuckyStars: []int{4, 11}},
		{Name: "Lebron", Numbers: []int{5, 10, 29, 36, 41}, LuckyStars: []int{1, 2}},
		{Name: "Shaq", Numbers: []int{6, 16, 26, 36, 46}, LuckyStars: []int{4, 11}},
		{Name: "Jordan", Numbers: []int{7, 14, 21, 28, 35}, LuckyStars: []int{3, 9}},
	}
}
