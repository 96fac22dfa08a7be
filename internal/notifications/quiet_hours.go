package notifications

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuietHours is a recipient's daily suppression window. Start and End are
// "HH:MM" local-time strings and only meaningful while Enabled.
type QuietHours struct {
	Enabled bool
	Start   string
	End     string
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return hours*60 + minutes, nil
}

// Validate checks the window's clock strings. Disabled windows are always
// valid regardless of their start/end contents.
func (q QuietHours) Validate() error {
	if !q.Enabled {
		return nil
	}

	if _, err := parseClock(q.Start); err != nil {
		return err
	}

	if _, err := parseClock(q.End); err != nil {
		return err
	}

	return nil
}

// Contains reports whether t falls inside the window. A window whose start
// is later than its end wraps midnight (22:00-06:00 covers the night);
// equal start and end is a zero-length window that never matches.
func (q QuietHours) Contains(t time.Time) bool {
	if !q.Enabled {
		return false
	}

	start, err := parseClock(q.Start)
	if err != nil {
		return false
	}

	end, err := parseClock(q.End)
	if err != nil {
		return false
	}

	if start == end {
		return false
	}

	now := t.Hour()*60 + t.Minute()

	if start < end {
		return now >= start && now < end
	}

	return now >= start || now < end
}
