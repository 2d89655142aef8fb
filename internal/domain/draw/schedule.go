package draw

import "time"

// The syndicate plays the Friday EuroMillions draw, so any run date has to
// be resolved back to the most recent Friday before labels are derived.
func LastFriday(runDate time.Time) time.Time {
	weekday := int(runDate.Weekday()) // Sunday = 0
	var diff int
	switch {
	case weekday == 0: // Sunday
		diff = 2
	case weekday > 5: // Saturday
		diff = weekday - 5
	case weekday < 5:
		diff = 7 - (5 - weekday)
	default:
		diff = 0
	}
	return runDate.AddDate(0, 0, -diff)
}

// DateLabel renders a draw date the way the archive names result files,
// month truncated to three letters: "Fri 02 Oct 2020".
func DateLabel(drawDate time.Time) string {
	return drawDate.Format("Mon 02 Jan 2006")
}

// FileLabel is the sortable per-draw key used inside an interval folder.
func FileLabel(drawDate time.Time) string {
	return drawDate.Format("2006_01_02_Jan_Mon")
}

// IntervalLabel buckets a draw date into its reporting interval. Intervals
// are four-week periods anchored on the first Friday of the year, labelled
// by their start and end Fridays.
func IntervalLabel(drawDate time.Time) string {
	friday := LastFriday(drawDate)

	anchor := firstFriday(friday.Year())
	if friday.Before(anchor) {
		anchor = firstFriday(friday.Year() - 1)
	}

	weeks := int(friday.Sub(anchor).Hours()/24) / 7
	start := anchor.AddDate(0, 0, (weeks/4)*4*7)
	end := start.AddDate(0, 0, 3*7)

	return start.Format("2006-01-02") + "_to_" + end.Format("2006-01-02")
}

func firstFriday(year int) time.Time {
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Friday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}
