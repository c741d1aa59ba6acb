package deal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("deal not found")
	ErrPauseNotFound     = errors.New("pause period not found")
	ErrInvalidPauseRange = errors.New("pause start date must precede end date")
	ErrInvalidTransition = errors.New("invalid deal status transition")
)

type Status string

const (
	StatusNew       Status = "new"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusClosed    Status = "closed"
	StatusDefault   Status = "default"
	StatusCancelled Status = "cancelled"
)

// SubStatus qualifies PAUSED and DEFAULT; empty otherwise.
type SubStatus string

const (
	SubStatusNone        SubStatus = ""
	SubStatusPauseActive SubStatus = "pause_active"
	SubStatusForeclosure SubStatus = "foreclosure"
)

type ScheduleType string

const (
	ScheduleAnnuity      ScheduleType = "annuity"
	ScheduleDiff         ScheduleType = "diff"
	ScheduleInterestOnly ScheduleType = "interest_only"
	ScheduleManual       ScheduleType = "manual"
	ScheduleTranches     ScheduleType = "tranches"
)

// Generated reports whether the engine owns this deal's schedule. Manual and
// tranches schedules are externally authored and never (re)generated.
func (s ScheduleType) Generated() bool {
	return s == ScheduleAnnuity || s == ScheduleDiff || s == ScheduleInterestOnly
}

// Deal is the finance-deal header: the loan terms snapshot plus the status
// state machine NEW → ACTIVE ⇄ PAUSED → CLOSED | DEFAULT | CANCELLED.
// Currency is an opaque label carried through, never converted.
type Deal struct {
	ID                uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	DealID            string          `gorm:"column:deal_id;type:char(32);not null;uniqueIndex:ux_deals_deal_id_active"`
	Principal         decimal.Decimal `gorm:"column:principal;type:decimal(18,2);not null"`
	AnnualRatePercent decimal.Decimal `gorm:"column:annual_rate_percent;type:decimal(8,4);not null"`
	TermMonths        int             `gorm:"column:term_months;not null"`
	StartDate         time.Time       `gorm:"column:start_date;type:date;not null"`
	ScheduleType      ScheduleType    `gorm:"column:schedule_type;size:16;not null"`
	Currency          string          `gorm:"column:currency;size:8;not null"`
	Status            Status          `gorm:"column:status;size:16;not null;default:'new'"`
	SubStatus         SubStatus       `gorm:"column:sub_status;size:32"`
	StatusUpdatedAt   time.Time       `gorm:"column:status_updated_at"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt         gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Deal) TableName() string { return "deals" }

// PausePeriod suspends interest accrual over an inclusive calendar-date
// interval. Multiple pauses may exist per deal; the engine does not validate
// them for mutual non-overlap.
type PausePeriod struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	PauseID   string    `gorm:"column:pause_id;type:char(32);not null;uniqueIndex"`
	DealID    uint64    `gorm:"column:deal_id;not null;index"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PausePeriod) TableName() string { return "pause_periods" }

// ScheduleRow is one payment period of the generated schedule. Rows are a
// derived, disposable cache: regeneration deletes and rewrites the full set
// for a deal, never patches rows in place.
type ScheduleRow struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement"`
	DealID       uint64          `gorm:"column:deal_id;not null;index:idx_schedule_rows_deal"`
	Period       int             `gorm:"column:period;not null"`
	DueDate      time.Time       `gorm:"column:due_date;type:date;not null"`
	PrincipalDue decimal.Decimal `gorm:"column:principal_due;type:decimal(18,2);not null"`
	InterestDue  decimal.Decimal `gorm:"column:interest_due;type:decimal(18,2);not null"`
	TotalDue     decimal.Decimal `gorm:"column:total_due;type:decimal(18,2);not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ScheduleRow) TableName() string { return "schedule_rows" }
