package selection

// Entry is one player's persistent number choice. Names are the unique key
// across a selection set; numbers and stars are range-checked once at load
// time so match evaluation never re-validates.
type Entry struct {
	Name       string
	Numbers    []int
	LuckyStars []int
}
