package balance

import (
	"time"

	"github.com/shopspring/decimal"

	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
	"lombard-core/pkg/dates"
)

// Balances is the reduction of a deal's ledger into its financial position.
// TotalOwed here equals OutstandingPrincipal: interest currently due is a
// schedule concern, not a ledger one, and is added by OwedAsOf.
type Balances struct {
	TotalDisbursed       decimal.Decimal `json:"total_disbursed"`
	PrincipalRepaid      decimal.Decimal `json:"principal_repaid"`
	InterestRepaid       decimal.Decimal `json:"interest_repaid"`
	FeesAndPenalties     decimal.Decimal `json:"fees_and_penalties"`
	Adjustments          decimal.Decimal `json:"adjustments"`
	CollateralProceeds   decimal.Decimal `json:"collateral_proceeds"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	TotalOwed            decimal.Decimal `json:"total_owed"`
}

// Compute reduces the ledger in a single pass. Collateral sale proceeds and
// adjustments pay down principal exactly like a repayment; the outstanding
// figure is floored at zero so over-repayment never reports negative debt.
func Compute(entries []ledger.Entry) Balances {
	var b Balances
	for _, e := range entries {
		switch e.EntryType {
		case ledger.TypeDisbursement:
			b.TotalDisbursed = b.TotalDisbursed.Add(e.Amount)
		case ledger.TypePrincipalRepayment, ledger.TypeEarlyRepayment:
			b.PrincipalRepaid = b.PrincipalRepaid.Add(e.Amount)
		case ledger.TypeInterestPayment:
			b.InterestRepaid = b.InterestRepaid.Add(e.Amount)
		case ledger.TypeFee, ledger.TypePenalty:
			b.FeesAndPenalties = b.FeesAndPenalties.Add(e.Amount)
		case ledger.TypeAdjustment, ledger.TypeOffset:
			b.Adjustments = b.Adjustments.Add(e.Amount)
		case ledger.TypeCollateralSaleProceeds:
			b.CollateralProceeds = b.CollateralProceeds.Add(e.Amount)
		}
	}
	out := b.TotalDisbursed.
		Sub(b.PrincipalRepaid).
		Sub(b.CollateralProceeds).
		Sub(b.Adjustments)
	if out.IsNegative() {
		out = decimal.Zero
	}
	b.OutstandingPrincipal = out
	b.TotalOwed = out
	return b
}

// OwedAsOf is the reporting figure: outstanding principal plus interest from
// schedule rows whose due date has passed, net of interest already paid,
// floored at zero.
func OwedAsOf(entries []ledger.Entry, rows []deal.ScheduleRow, today time.Time) decimal.Decimal {
	b := Compute(entries)
	day := dates.DateOnly(today)
	accrued := decimal.Zero
	for _, r := range rows {
		if !dates.DateOnly(r.DueDate).After(day) {
			accrued = accrued.Add(r.InterestDue)
		}
	}
	unpaid := accrued.Sub(b.InterestRepaid)
	if unpaid.IsNegative() {
		unpaid = decimal.Zero
	}
	return b.OutstandingPrincipal.Add(unpaid)
}

// TotalPausedDays sums the exclusive day span of each pause period, for
// reporting only; it is independent of schedule generation.
func TotalPausedDays(pauses []deal.PausePeriod) int {
	total := 0
	for _, p := range pauses {
		if d := dates.DaysInRange(p.StartDate, p.EndDate); d > 0 {
			total += d
		}
	}
	return total
}
