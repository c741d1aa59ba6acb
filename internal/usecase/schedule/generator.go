package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"lombard-core/internal/domain/deal"
	"lombard-core/pkg/dates"
)

// Terms is the loan-terms snapshot the generator consumes. It is deliberately
// detached from the persisted Deal so generation stays a pure function of its
// arguments.
type Terms struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
	StartDate         time.Time
	Type              deal.ScheduleType
}

// TermsOf snapshots a deal header into generator input.
func TermsOf(d *deal.Deal) Terms {
	return Terms{
		Principal:         d.Principal,
		AnnualRatePercent: d.AnnualRatePercent,
		TermMonths:        d.TermMonths,
		StartDate:         d.StartDate,
		Type:              d.ScheduleType,
	}
}

// Row is one generated payment period. Period numbering is a contiguous
// 1-based sequence over emitted rows only; fully paused months are skipped
// without advancing the counter.
type Row struct {
	Period       int
	DueDate      time.Time
	PrincipalDue decimal.Decimal
	InterestDue  decimal.Decimal
	TotalDue     decimal.Decimal
}

var (
	one       = decimal.NewFromInt(1)
	percentsY = decimal.NewFromInt(1200) // annual percent -> monthly fraction
)

// Intervals converts persisted pause periods into date intervals.
func Intervals(pauses []deal.PausePeriod) []dates.Interval {
	out := make([]dates.Interval, 0, len(pauses))
	for _, p := range pauses {
		out = append(out, dates.Interval{Start: p.StartDate, End: p.EndDate})
	}
	return out
}

// Generate produces the full payment schedule for the given terms and pause
// set. Manual and tranches schedules are externally authored, so it returns
// nil for those. Monetary figures are rounded to 2 decimal places at every
// step to match a ledger that posts in cents; the final emitted row absorbs
// whatever rounding remainder is left on the balance so the schedule always
// amortizes to zero.
//
// Callers are expected to validate terms first: termMonths < 1 or a
// non-positive principal yield an empty or degenerate schedule, not an error.
func Generate(t Terms, pauses []dates.Interval) []Row {
	if !t.Type.Generated() {
		return nil
	}

	monthlyRate := t.AnnualRatePercent.Div(percentsY)
	remaining := t.Principal.Round(2)

	// The annuity payment is fixed once from the original principal and term;
	// it is not re-derived when pauses shorten the effective schedule.
	var payment, slice decimal.Decimal
	switch t.Type {
	case deal.ScheduleAnnuity:
		payment = annuityPayment(t.Principal, monthlyRate, t.TermMonths)
	case deal.ScheduleDiff:
		slice = divideRounded(t.Principal, t.TermMonths)
	}

	var rows []Row
	for i := 1; i <= t.TermMonths; i++ {
		from := dates.AddMonths(t.StartDate, i-1)
		due := dates.AddMonths(t.StartDate, i)
		totalDays := dates.DaysInRange(from, due)
		if totalDays <= 0 {
			continue
		}
		activeDays := totalDays - dates.PausedDaysInRange(from, due, pauses)
		if activeDays <= 0 {
			// whole month paused: no row, the period counter stands still
			continue
		}
		fraction := decimal.NewFromInt(int64(activeDays)).Div(decimal.NewFromInt(int64(totalDays)))

		var interest, principal decimal.Decimal
		switch t.Type {
		case deal.ScheduleAnnuity:
			interest = remaining.Mul(monthlyRate).Mul(fraction).Round(2)
			principal = payment.Sub(interest)
			if principal.GreaterThan(remaining) {
				principal = remaining
			}
			if principal.IsNegative() {
				principal = decimal.Zero
			}
		case deal.ScheduleDiff:
			interest = remaining.Mul(monthlyRate).Mul(fraction).Round(2)
			principal = slice
			if i == t.TermMonths || principal.GreaterThan(remaining) {
				principal = remaining
			}
		case deal.ScheduleInterestOnly:
			// interest runs off the original principal: none of it has been
			// repaid until the final bullet
			interest = t.Principal.Mul(monthlyRate).Mul(fraction).Round(2)
			if i == t.TermMonths {
				principal = remaining
			} else {
				principal = decimal.Zero
			}
		}
		principal = principal.Round(2)
		remaining = remaining.Sub(principal)

		rows = append(rows, Row{
			Period:       len(rows) + 1,
			DueDate:      due,
			PrincipalDue: principal,
			InterestDue:  interest,
			TotalDue:     principal.Add(interest).Round(2),
		})
	}

	// Rounding drift, or a skipped final month, can leave a sliver on the
	// balance; fold it into the last emitted row's principal.
	if len(rows) > 0 && !remaining.IsZero() {
		last := &rows[len(rows)-1]
		last.PrincipalDue = last.PrincipalDue.Add(remaining).Round(2)
		last.TotalDue = last.PrincipalDue.Add(last.InterestDue).Round(2)
	}
	return rows
}

// annuityPayment computes the level payment P·r / (1 − (1+r)^−n), falling
// back to straight-line for a zero rate.
func annuityPayment(principal, monthlyRate decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths < 1 {
		return decimal.Zero
	}
	if monthlyRate.IsZero() {
		return divideRounded(principal, termMonths)
	}
	n := decimal.NewFromInt(int64(termMonths))
	factor := one.Sub(one.Div(one.Add(monthlyRate).Pow(n)))
	return principal.Mul(monthlyRate).Div(factor).Round(2)
}

func divideRounded(amount decimal.Decimal, parts int) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(int64(parts))).Round(2)
}
