package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for every timestamp exchanged with the
// backend: local wall-clock time, no timezone suffix.
const TimeLayout = "2006-01-02T15:04:05"

// LocalTime is a time.Time that marshals to and from TimeLayout.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t}
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		// The backend occasionally appends fractional seconds.
		parsed, err = time.ParseInLocation(TimeLayout+".999999999", s, time.Local)
	}
	if err != nil {
		return fmt.Errorf("parse local time %q: %w", s, err)
	}

	t.Time = parsed
	return nil
}

// ViewWindow scopes every snapshot fetch and every push subscription: one
// zone, one contiguous block of time. Changing any field means a brand-new
// window; nothing carries over from the previous one.
type ViewWindow struct {
	ZoneID int64
	Start  time.Time
	End    time.Time
}

func (w ViewWindow) StartParam() string { return w.Start.Format(TimeLayout) }
func (w ViewWindow) EndParam() string   { return w.End.Format(TimeLayout) }

// Hours is the whole-hour span of the window, floored at zero. Pricing and
// the reservation summary both count whole hours only.
func (w ViewWindow) Hours() int {
	h := w.End.Hour() - w.Start.Hour()
	if h < 0 {
		return 0
	}
	return h
}

func (w ViewWindow) String() string {
	return fmt.Sprintf("zone %d %s ~ %s", w.ZoneID, w.StartParam(), w.EndParam())
}
