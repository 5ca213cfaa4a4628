package producthunt

import "time"

const (
	// DateLayout is the calendar-day format accepted by the client.
	DateLayout = "2006-01-02"

	// wireTimeLayout renders UTC instants with millisecond precision and a Z suffix.
	wireTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// DayRange is one calendar day in a given timezone. Both bounds are inclusive.
type DayRange struct {
	Start time.Time
	End   time.Time
}

// ParseDayRange returns [00:00:00.000, 23:59:59.999] of date in loc.
// It fails with *InvalidDateError when date is not YYYY-MM-DD.
func ParseDayRange(date string, loc *time.Location) (DayRange, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return DayRange{}, &InvalidDateError{Date: date, Err: err}
	}
	y, m, day := d.Date()
	return DayRange{
		Start: time.Date(y, m, day, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), loc),
	}, nil
}

// PostedAfter is the lower bound in wire format.
func (r DayRange) PostedAfter() string {
	return formatWireTime(r.Start)
}

// PostedBefore is the upper bound in wire format.
func (r DayRange) PostedBefore() string {
	return formatWireTime(r.End)
}

func formatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout)
}
