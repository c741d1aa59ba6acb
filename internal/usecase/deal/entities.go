package deal

import (
	"time"

	"github.com/shopspring/decimal"

	domainDeal "lombard-core/internal/domain/deal"
	"lombard-core/internal/usecase/balance"
)

type CreateDealInput struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
	StartDate         time.Time
	ScheduleType      domainDeal.ScheduleType
	Currency          string
}

type DealDTO struct {
	DealID            string          `json:"deal_id"`
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermMonths        int             `json:"term_months"`
	StartDate         time.Time       `json:"start_date"`
	ScheduleType      string          `json:"schedule_type"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	SubStatus         string          `json:"sub_status,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

type ScheduleRowDTO struct {
	Period       int             `json:"period"`
	DueDate      time.Time       `json:"due_date"`
	PrincipalDue decimal.Decimal `json:"principal_due"`
	InterestDue  decimal.Decimal `json:"interest_due"`
	TotalDue     decimal.Decimal `json:"total_due"`
}

type PauseDTO struct {
	PauseID   string    `json:"pause_id"`
	DealID    string    `json:"deal_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// BalancesDTO joins the pure ledger reduction with the two schedule-derived
// reporting figures (owed as of today, total paused days).
type BalancesDTO struct {
	balance.Balances
	Currency        string          `json:"currency"`
	OwedAsOf        decimal.Decimal `json:"owed_as_of"`
	AsOf            time.Time       `json:"as_of"`
	TotalPausedDays int             `json:"total_paused_days"`
}

func toDealDTO(d *domainDeal.Deal) *DealDTO {
	return &DealDTO{
		DealID:            d.DealID,
		Principal:         d.Principal,
		AnnualRatePercent: d.AnnualRatePercent,
		TermMonths:        d.TermMonths,
		StartDate:         d.StartDate,
		ScheduleType:      string(d.ScheduleType),
		Currency:          d.Currency,
		Status:            string(d.Status),
		SubStatus:         string(d.SubStatus),
		CreatedAt:         d.CreatedAt,
	}
}

func toRowDTOs(rows []domainDeal.ScheduleRow) []ScheduleRowDTO {
	out := make([]ScheduleRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ScheduleRowDTO{
			Period:       r.Period,
			DueDate:      r.DueDate,
			PrincipalDue: r.PrincipalDue,
			InterestDue:  r.InterestDue,
			TotalDue:     r.TotalDue,
		})
	}
	return out
}
