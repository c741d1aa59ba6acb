package balance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
)

func entry(typ ledger.EntryType, amount float64) ledger.Entry {
	return ledger.Entry{EntryType: typ, Amount: decimal.NewFromFloat(amount)}
}

func eq(t *testing.T, name string, got decimal.Decimal, want float64) {
	t.Helper()
	if !got.Equal(decimal.NewFromFloat(want)) {
		t.Errorf("%s = %s, want %v", name, got, want)
	}
}

func TestCompute_BucketMapping(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.TypeDisbursement, 100000),
		entry(ledger.TypePrincipalRepayment, 10000),
		entry(ledger.TypeEarlyRepayment, 5000),
		entry(ledger.TypeInterestPayment, 1200),
		entry(ledger.TypeFee, 50),
		entry(ledger.TypePenalty, 25),
		entry(ledger.TypeAdjustment, 300),
		entry(ledger.TypeOffset, 200),
		entry(ledger.TypeCollateralSaleProceeds, 4000),
	}
	b := Compute(entries)

	eq(t, "TotalDisbursed", b.TotalDisbursed, 100000)
	eq(t, "PrincipalRepaid", b.PrincipalRepaid, 15000)
	eq(t, "InterestRepaid", b.InterestRepaid, 1200)
	eq(t, "FeesAndPenalties", b.FeesAndPenalties, 75)
	eq(t, "Adjustments", b.Adjustments, 500)
	eq(t, "CollateralProceeds", b.CollateralProceeds, 4000)
	// 100000 - 15000 - 4000 - 500
	eq(t, "OutstandingPrincipal", b.OutstandingPrincipal, 80500)
	if !b.TotalOwed.Equal(b.OutstandingPrincipal) {
		t.Errorf("TotalOwed = %s, want OutstandingPrincipal %s", b.TotalOwed, b.OutstandingPrincipal)
	}
}

func TestCompute_EmptyLedger(t *testing.T) {
	b := Compute(nil)
	if !b.OutstandingPrincipal.IsZero() || !b.TotalDisbursed.IsZero() {
		t.Errorf("empty ledger should be all zero, got %+v", b)
	}
}

func TestCompute_OverRepaymentFloorsAtZero(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.TypeDisbursement, 1000),
		entry(ledger.TypePrincipalRepayment, 1500),
	}
	b := Compute(entries)
	if !b.OutstandingPrincipal.IsZero() {
		t.Errorf("outstanding = %s, want 0 after over-repayment", b.OutstandingPrincipal)
	}
	if !b.TotalOwed.IsZero() {
		t.Errorf("totalOwed = %s, want 0", b.TotalOwed)
	}
}

func TestOwedAsOf_AddsPastDueInterest(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.TypeDisbursement, 10000),
		entry(ledger.TypeInterestPayment, 40),
	}
	rows := []deal.ScheduleRow{
		{Period: 1, DueDate: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), InterestDue: decimal.NewFromInt(100)},
		{Period: 2, DueDate: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), InterestDue: decimal.NewFromInt(100)},
		{Period: 3, DueDate: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), InterestDue: decimal.NewFromInt(100)},
	}
	// two rows are past due on Mar 15; 200 accrued minus 40 already paid
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	eq(t, "OwedAsOf", OwedAsOf(entries, rows, today), 10160)

	// a row due exactly today counts
	eq(t, "OwedAsOf(due today)", OwedAsOf(entries, rows, time.Date(2024, time.April, 1, 12, 30, 0, 0, time.UTC)), 10260)
}

func TestOwedAsOf_InterestOverpaidDoesNotReducePrincipal(t *testing.T) {
	entries := []ledger.Entry{
		entry(ledger.TypeDisbursement, 10000),
		entry(ledger.TypeInterestPayment, 500),
	}
	rows := []deal.ScheduleRow{
		{Period: 1, DueDate: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), InterestDue: decimal.NewFromInt(100)},
	}
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	eq(t, "OwedAsOf", OwedAsOf(entries, rows, today), 10000)
}

func TestTotalPausedDays(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC) }
	pauses := []deal.PausePeriod{
		{StartDate: d(1), EndDate: d(11)},  // 10
		{StartDate: d(20), EndDate: d(25)}, // 5
		{StartDate: d(28), EndDate: d(28)}, // zero-length, ignored
	}
	if got := TotalPausedDays(pauses); got != 15 {
		t.Fatalf("TotalPausedDays = %d, want 15", got)
	}
	if got := TotalPausedDays(nil); got != 0 {
		t.Fatalf("TotalPausedDays(nil) = %d, want 0", got)
	}
}
