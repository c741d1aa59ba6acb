package dates

import (
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths_ClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		start time.Time
		n     int
		want  time.Time
	}{
		{d(2024, time.January, 31), 1, d(2024, time.February, 29)}, // leap year
		{d(2023, time.January, 31), 1, d(2023, time.February, 28)},
		{d(2024, time.January, 31), 2, d(2024, time.March, 31)},
		{d(2024, time.January, 31), 3, d(2024, time.April, 30)},
		{d(2024, time.March, 15), 1, d(2024, time.April, 15)},
		{d(2024, time.November, 30), 3, d(2025, time.February, 28)}, // year rollover
		{d(2024, time.May, 10), 0, d(2024, time.May, 10)},
	}
	for _, c := range cases {
		if got := AddMonths(c.start, c.n); !got.Equal(c.want) {
			t.Errorf("AddMonths(%v, %d) = %v, want %v", c.start, c.n, got, c.want)
		}
	}
}

func TestDaysInRange(t *testing.T) {
	if got := DaysInRange(d(2024, time.March, 1), d(2024, time.April, 1)); got != 31 {
		t.Fatalf("march has %d days?", got)
	}
	if got := DaysInRange(d(2024, time.March, 1), d(2024, time.March, 1)); got != 0 {
		t.Fatalf("empty range = %d, want 0", got)
	}
	if got := DaysInRange(d(2024, time.March, 2), d(2024, time.March, 1)); got != -1 {
		t.Fatalf("inverted range = %d, want -1", got)
	}
}

func TestIntervalContains(t *testing.T) {
	iv := Interval{Start: d(2024, time.March, 10), End: d(2024, time.March, 12)}
	for _, day := range []time.Time{d(2024, time.March, 10), d(2024, time.March, 11), d(2024, time.March, 12)} {
		if !iv.Contains(day) {
			t.Errorf("%v should be inside %v..%v", day, iv.Start, iv.End)
		}
	}
	if iv.Contains(d(2024, time.March, 9)) || iv.Contains(d(2024, time.March, 13)) {
		t.Error("interval endpoints leaked")
	}
}

func TestPausedDaysInRange(t *testing.T) {
	from, to := d(2024, time.March, 1), d(2024, time.April, 1)

	// pause fully inside: Mar 10..Mar 11 inclusive = 2 days
	got := PausedDaysInRange(from, to, []Interval{{Start: d(2024, time.March, 10), End: d(2024, time.March, 11)}})
	if got != 2 {
		t.Fatalf("inside overlap = %d, want 2", got)
	}

	// pause straddling the start: Feb 25..Mar 3 → 3 days inside
	got = PausedDaysInRange(from, to, []Interval{{Start: d(2024, time.February, 25), End: d(2024, time.March, 3)}})
	if got != 3 {
		t.Fatalf("straddle start = %d, want 3", got)
	}

	// pause covering the whole window
	got = PausedDaysInRange(from, to, []Interval{{Start: d(2024, time.February, 1), End: d(2024, time.May, 1)}})
	if got != 31 {
		t.Fatalf("full cover = %d, want 31", got)
	}

	// disjoint pause contributes nothing
	got = PausedDaysInRange(from, to, []Interval{{Start: d(2024, time.June, 1), End: d(2024, time.June, 10)}})
	if got != 0 {
		t.Fatalf("disjoint = %d, want 0", got)
	}
}

func TestPausedDaysInRange_OverlappingPausesDoubleCount(t *testing.T) {
	// Two pauses over the same days are summed per interval, not merged.
	from, to := d(2024, time.March, 1), d(2024, time.April, 1)
	pauses := []Interval{
		{Start: d(2024, time.March, 10), End: d(2024, time.March, 14)},
		{Start: d(2024, time.March, 12), End: d(2024, time.March, 16)},
	}
	if got := PausedDaysInRange(from, to, pauses); got != 10 {
		t.Fatalf("overlapping pauses = %d, want 10 (5+5, no dedup)", got)
	}
}
