package money

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Amount
	}{
		{name: "plain", raw: "£0.00", want: 0},
		{name: "pennies", raw: "£4.80", want: 480},
		{name: "pounds and pennies", raw: "£40.10", want: 4010},
		{name: "thousands separator", raw: "£2,068,226.40", want: 206822640},
		{name: "no symbol", raw: "4.90", want: 490},
		{name: "malformed separators collapse to digits", raw: "£1,000,00.00", want: 10000000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tc.raw)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParse_NoDigits(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "£", "n/a", "—"} {
		if _, err := Parse(raw); !errors.Is(err, ErrUnparsable) {
			t.Fatalf("Parse(%q) err = %v, want ErrUnparsable", raw, err)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount Amount
		want   string
	}{
		{amount: 0, want: "£0.00"},
		{amount: 5, want: "£0.05"},
		{amount: 4010, want: "£40.10"},
		{amount: 206822640, want: "£2068226.40"},
		{amount: -480, want: "-£4.80"},
	}

	for _, tc := range tests {
		if got := tc.amount.Format(); got != tc.want {
			t.Fatalf("Format(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestPounds(t *testing.T) {
	t.Parallel()

	if got := Amount(4980).Pounds(); got != 49.80 {
		t.Fatalf("Pounds(4980) = %v, want 49.80", got)
	}
}
