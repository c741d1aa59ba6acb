package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	TypeDisbursement           EntryType = "disbursement"
	TypePrincipalRepayment     EntryType = "principal_repayment"
	TypeEarlyRepayment         EntryType = "early_repayment"
	TypeInterestPayment        EntryType = "interest_payment"
	TypeFee                    EntryType = "fee"
	TypePenalty                EntryType = "penalty"
	TypeAdjustment             EntryType = "adjustment"
	TypeOffset                 EntryType = "offset"
	TypeCollateralSaleProceeds EntryType = "collateral_sale_proceeds"
)

// ScopeRestricted marks entries (foreclosure marks) hidden from the regular
// statement view. The tag is opaque to this engine.
const ScopeRestricted = "restricted"

// Entry is one signed cash-flow fact on a deal's ledger. Entries are
// append-only: the engine aggregates them, never mutates them.
type Entry struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	EntryID         string          `gorm:"column:entry_id;type:char(32);not null;uniqueIndex"`
	DealID          uint64          `gorm:"column:deal_id;not null;index:idx_ledger_entries_deal"`
	EntryType       EntryType       `gorm:"column:entry_type;size:32;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null"`
	Currency        string          `gorm:"column:currency;size:8;not null"`
	OccurredAt      time.Time       `gorm:"column:occurred_at;not null"`
	VisibilityScope string          `gorm:"column:visibility_scope;size:32"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Entry) TableName() string { return "ledger_entries" }
