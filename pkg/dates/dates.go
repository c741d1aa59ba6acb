package dates

import "time"

// DateOnly truncates t to midnight UTC. All engine date math works on
// date-only values so timezone drift can never shift a period boundary.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to t. If the day-of-month does not exist
// in the target month it clamps to that month's last day, so a deal started
// on Jan 31 bills on Feb 28/29, Mar 31, Apr 30, and so on.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOfMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(y int, m time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysInRange returns the exclusive day count between from and to (to − from).
// A negative result means to precedes from.
func DaysInRange(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)) / (24 * time.Hour))
}

// Interval is an inclusive calendar-date range (both endpoints belong to it).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls inside the interval.
func (iv Interval) Contains(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(iv.Start)) && !d.After(DateOnly(iv.End))
}

// PausedDaysInRange sums the overlap, in days, between the half-open range
// [from, to) and each pause interval. Intervals that overlap each other are
// counted once per interval, not deduplicated.
func PausedDaysInRange(from, to time.Time, pauses []Interval) int {
	lo, hi := DateOnly(from), DateOnly(to)
	total := 0
	for _, p := range pauses {
		s := DateOnly(p.Start)
		if s.Before(lo) {
			s = lo
		}
		// inclusive end date -> half-open upper bound is end+1d
		e := DateOnly(p.End).AddDate(0, 0, 1)
		if e.After(hi) {
			e = hi
		}
		if e.After(s) {
			total += DaysInRange(s, e)
		}
	}
	return total
}
