package news

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of request dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates; end must not precede start.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateRange{Start: s, End: e}, nil
}

// EndOfRange is the last second of the final day.
func (r DateRange) EndOfRange() time.Time {
	return r.End.Add(24*time.Hour - time.Second)
}

// StartString formats the first day.
func (r DateRange) StartString() string { return r.Start.Format(DateLayout) }

// EndString formats the last day.
func (r DateRange) EndString() string { return r.End.Format(DateLayout) }

// Label renders the range for humans, e.g. "Jan 2 – Jan 9, 2025".
func (r DateRange) Label() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format("Jan 2, 2006")
	}
	if r.Start.Year() == r.End.Year() {
		return r.Start.Format("Jan 2") + " – " + r.End.Format("Jan 2, 2006")
	}
	return r.Start.Format("Jan 2, 2006") + " – " + r.End.Format("Jan 2, 2006")
}
