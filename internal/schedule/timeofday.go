package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bashhack/commitbot/internal/errors"
)

// Frequency is the policy deciding how many triggers are registered per day
type Frequency string

// Supported frequency modes
const (
	Daily      Frequency = "daily"
	TwiceDaily Frequency = "twice_daily"
	Random     Frequency = "random"
)

// Frequencies lists every supported mode
var Frequencies = []Frequency{Daily, TwiceDaily, Random}

// Valid reports whether f is one of the supported modes
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// MinSlots is the number of distinct slots the mode needs
func (f Frequency) MinSlots() int {
	switch f {
	case Daily:
		return 1
	case TwiceDaily:
		return 2
	default:
		return 0
	}
}

// TimeOfDay is a wall-clock "HH:MM" slot
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock, leading zero optional for
// the hour)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || hh == "" || len(mm) != 2 {
		return TimeOfDay{}, errors.Wrapf(errors.ErrInvalidConfiguration, "invalid time %q, want HH:MM", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, errors.Wrapf(errors.ErrInvalidConfiguration, "invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, errors.Wrapf(errors.ErrInvalidConfiguration, "invalid minute in %q", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseSlots parses every slot and drops duplicates, keeping first-seen order
func ParseSlots(slots []string) ([]TimeOfDay, error) {
	seen := make(map[TimeOfDay]bool, len(slots))
	out := make([]TimeOfDay, 0, len(slots))
	for _, s := range slots {
		t, err := ParseTimeOfDay(s)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// String formats the slot as "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Next returns the first occurrence of the slot strictly after `after`
// in after's location.
func (t TimeOfDay) Next(after time.Time) time.Time {
	y, m, d := after.Date()
	candidate := time.Date(y, m, d, t.Hour, t.Minute, 0, 0, after.Location())
	if !candidate.After(after) {
		candidate = time.Date(y, m, d+1, t.Hour, t.Minute, 0, 0, after.Location())
	}
	return candidate
}
