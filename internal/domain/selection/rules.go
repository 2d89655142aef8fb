package selection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingName      = errors.New("entry name is required")
	ErrDuplicateName    = errors.New("duplicate entry name")
	ErrWrongArity       = errors.New("wrong number of picks")
	ErrNumberOutOfRange = errors.New("number outside game range")
)

// Rules stores the game's selection constraints.
type Rules struct {
	NumberCount int
	NumberMin   int
	NumberMax   int
	StarCount   int
	StarMin     int
	StarMax     int
}

// EuroMillions: five main numbers from 1-50 and two lucky stars from 1-12.
func DefaultRules() Rules {
	return Rules{
		NumberCount: 5,
		NumberMin:   1,
		NumberMax:   50,
		StarCount:   2,
		StarMin:     1,
		StarMax:     12,
	}
}

// ValidateEntries checks a whole selection set at load time: unique names,
// fixed arity, numbers within the game ranges. Downstream evaluation relies
// on this having run and does not re-check.
func ValidateEntries(entries []Entry, rules Rules) error {
	if len(entries) == 0 {
		return fmt.Errorf("selection set is empty")
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return ErrMissingName
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}

		if err := checkPicks(name, "numbers", entry.Numbers, rules.NumberCount, rules.NumberMin, rules.NumberMax); err != nil {
			return err
		}
		if err := checkPicks(name, "lucky stars", entry.LuckyStars, rules.StarCount, rules.StarMin, rules.StarMax); err != nil {
			return err
		}
	}

	return nil
}

func checkPicks(name, kind string, picks []int, count, min, max int) error {
	if len(picks) != count {
		return fmt.Errorf("%w: %s has %d %s, expected %d", ErrWrongArity, name, len(picks), kind, count)
	}
	for _, pick := range picks {
		if pick < min || pick > max {
			return fmt.Errorf("%w: %s %s value %d not in [%d, %d]", ErrNumberOutOfRange, name, kind, pick, min, max)
		}
	}
	return nil
}
