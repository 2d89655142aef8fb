package draw

import (
	"testing"
	"time"
)

func TestLastFriday(t *testing.T) {
	t.Parallel()

	friday := time.Date(2020, time.October, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		runDate time.Time
		want    time.Time
	}{
		{name: "friday itself", runDate: friday, want: friday},
		{name: "saturday", runDate: friday.AddDate(0, 0, 1), want: friday},
		{name: "sunday", runDate: friday.AddDate(0, 0, 2), want: friday},
		{name: "monday", runDate: friday.AddDate(0, 0, 3), want: friday},
		{name: "thursday", runDate: friday.AddDate(0, 0, 6), want: friday},
		{name: "next friday", runDate: friday.AddDate(0, 0, 7), want: friday.AddDate(0, 0, 7)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := LastFriday(tc.runDate); !got.Equal(tc.want) {
				t.Fatalf("LastFriday(%s) = %s, want %s", tc.runDate, got, tc.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	drawDate := time.Date(2020, time.October, 2, 0, 0, 0, 0, time.UTC)

	if got := DateLabel(drawDate); got != "Fri 02 Oct 2020" {
		t.Fatalf("DateLabel = %q", got)
	}
	if got := FileLabel(drawDate); got != "2020_10_02_Oct_Fri" {
		t.Fatalf("FileLabel = %q", got)
	}
}

func TestIntervalLabel(t *testing.T) {
	t.Parallel()

	// 2020-01-03 is the first Friday of 2020, so the first four-week bucket
	// runs 03 Jan .. 24 Jan.
	tests := []struct {
		drawDate time.Time
		want     string
	}{
		{time.Date(2020, time.January, 3, 0, 0, 0, 0, time.UTC), "2020-01-03_to_2020-01-24"},
		{time.Date(2020, time.January, 24, 0, 0, 0, 0, time.UTC), "2020-01-03_to_2020-01-24"},
		{time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC), "2020-01-31_to_2020-02-21"},
	}

	for _, tc := range tests {
		if got := IntervalLabel(tc.drawDate); got != tc.want {
			t.Fatalf("IntervalLabel(%s) = %q, want %q", tc.drawDate.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestIntervalLabel_SameBucketForWholeWeek(t *testing.T) {
	t.Parallel()

	friday := time.Date(2021, time.June, 4, 0, 0, 0, 0, time.UTC)
	want := IntervalLabel(friday)
	for offset := 1; offset < 7; offset++ {
		if got := IntervalLabel(friday.AddDate(0, 0, offset)); got != want {
			t.Fatalf("IntervalLabel(+%dd) = %q, want %q", offset, got, want)
		}
	}
}
