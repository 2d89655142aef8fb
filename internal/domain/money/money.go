package money

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrUnparsable = errors.New("unparsable money amount")

// Amount is a prize value in minor currency units (pence). Aggregation
// arithmetic stays on integers; formatting happens only at the edges.
type Amount int64

// Parse converts a scraped prize string into minor units by stripping every
// non-digit byte and reading what is left as a base-10 integer. The prize
// pages always quote two decimal places, so "£40.10" comes out as 4010.
// Thousands separators and decimal points are treated identically; this
// matches the archive's historical parse rule and must stay that way, or
// re-aggregated reports would drift from the stored ones.
func Parse(raw string) (Amount, error) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsable, raw)
	}

	value, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrUnparsable, raw, err)
	}

	return Amount(value), nil
}

// MustParse is for fixtures and seeds where the literal is known good.
func MustParse(raw string) Amount {
	amount, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return amount
}

func (a Amount) Format() string {
	sign := ""
	value := int64(a)
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s£%d.%02d", sign, value/100, value%100)
}

// Pounds converts to major units for report rows.
func (a Amount) Pounds() float64 {
	return float64(a) / 100
}

func (a Amount) String() string {
	return a.Format()
}
