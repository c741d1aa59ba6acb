package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domainDeal "lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
	"lombard-core/internal/domain/uow"
	"lombard-core/internal/usecase/balance"
	"lombard-core/internal/usecase/schedule"
	"lombard-core/pkg/dates"
	"lombard-core/pkg/id"
)

// Usecase is the deal lifecycle orchestrator. It owns the invariant that the
// persisted schedule always reflects current terms plus the current pause
// set: every mutation below ends with a full regeneration inside the same
// transaction, so a reader can never observe a half-written schedule.
//
// "today" is threaded in explicitly on every time-sensitive operation; the
// engine never samples the wall clock itself.
type Usecase struct {
	deals    domainDeal.Repository
	pauses   domainDeal.PauseRepository
	schedule domainDeal.ScheduleRepository
	ledger   ledger.Repository
	uow      uow.UnitOfWork
}

func NewUsecase(
	deals domainDeal.Repository,
	pauses domainDeal.PauseRepository,
	rows domainDeal.ScheduleRepository,
	entries ledger.Repository,
	tx uow.UnitOfWork,
) *Usecase {
	return &Usecase{deals: deals, pauses: pauses, schedule: rows, ledger: entries, uow: tx}
}

// Create persists a fresh deal and, unless its schedule is externally
// authored (manual/tranches), generates the initial schedule in the same
// transaction. The deal comes out ACTIVE.
func (u *Usecase) Create(ctx context.Context, in CreateDealInput) (*DealDTO, error) {
	if in.TermMonths < 1 {
		return nil, fmt.Errorf("term_months must be at least 1")
	}
	if in.Principal.IsNegative() || in.AnnualRatePercent.IsNegative() {
		return nil, fmt.Errorf("principal and rate must not be negative")
	}
	switch in.ScheduleType {
	case domainDeal.ScheduleAnnuity, domainDeal.ScheduleDiff, domainDeal.ScheduleInterestOnly,
		domainDeal.ScheduleManual, domainDeal.ScheduleTranches:
	default:
		return nil, fmt.Errorf("unknown schedule type %q", in.ScheduleType)
	}

	d := &domainDeal.Deal{
		DealID:            id.NewID32(),
		Principal:         in.Principal.Round(2),
		AnnualRatePercent: in.AnnualRatePercent,
		TermMonths:        in.TermMonths,
		StartDate:         dates.DateOnly(in.StartDate),
		ScheduleType:      in.ScheduleType,
		Currency:          in.Currency,
		Status:            domainDeal.StatusActive,
		StatusUpdatedAt:   time.Now().UTC(),
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Deals.Create(ctx, d); err != nil {
			return err
		}
		return regenerate(ctx, r, d)
	})
	if err != nil {
		return nil, err
	}
	return toDealDTO(d), nil
}

func (u *Usecase) Get(ctx context.Context, dealID string) (*DealDTO, error) {
	d, err := u.deals.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainDeal.ErrNotFound
		}
		return nil, err
	}
	return toDealDTO(d), nil
}

func (u *Usecase) GetSchedule(ctx context.Context, dealID string) ([]ScheduleRowDTO, error) {
	d, err := u.deals.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainDeal.ErrNotFound
		}
		return nil, err
	}
	rows, err := u.schedule.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return toRowDTOs(rows), nil
}

// Balances aggregates the deal's ledger and adds the schedule-side reporting
// figures as of today.
func (u *Usecase) Balances(ctx context.Context, dealID string, today time.Time) (*BalancesDTO, error) {
	d, err := u.deals.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainDeal.ErrNotFound
		}
		return nil, err
	}
	entries, err := u.ledger.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	rows, err := u.schedule.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	pauses, err := u.pauses.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	return &BalancesDTO{
		Balances:        balance.Compute(entries),
		Currency:        d.Currency,
		OwedAsOf:        balance.OwedAsOf(entries, rows, today),
		AsOf:            dates.DateOnly(today),
		TotalPausedDays: balance.TotalPausedDays(pauses),
	}, nil
}

// Pause inserts an accrual pause. If today already falls inside it the deal
// flips to PAUSED; a future-dated pause leaves the status alone. The schedule
// is regenerated either way. Terminal deals (closed, default, cancelled)
// reject the operation.
func (u *Usecase) Pause(ctx context.Context, dealID string, start, end, today time.Time) (*PauseDTO, error) {
	start, end = dates.DateOnly(start), dates.DateOnly(end)
	if !start.Before(end) {
		return nil, domainDeal.ErrInvalidPauseRange
	}

	var dto *PauseDTO
	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domainDeal.Deal) error {
		if d.Status != domainDeal.StatusActive && d.Status != domainDeal.StatusPaused {
			return domainDeal.ErrInvalidTransition
		}
		p := &domainDeal.PausePeriod{
			PauseID:   id.NewID32(),
			DealID:    d.ID,
			StartDate: start,
			EndDate:   end,
		}
		if err := r.Pauses.Create(ctx, p); err != nil {
			return err
		}
		if (dates.Interval{Start: start, End: end}).Contains(today) {
			d.Status = domainDeal.StatusPaused
			d.SubStatus = domainDeal.SubStatusPauseActive
			d.StatusUpdatedAt = time.Now().UTC()
			if err := r.Deals.Save(ctx, d); err != nil {
				return err
			}
		}
		dto = &PauseDTO{PauseID: p.PauseID, DealID: d.DealID, StartDate: p.StartDate, EndDate: p.EndDate}
		return regenerate(ctx, r, d)
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Resume ends the pause early by clamping its end date to today, regardless
// of whether the original end was past or future, and puts the deal back to
// ACTIVE. Terminal deals reject the operation.
func (u *Usecase) Resume(ctx context.Context, pauseID string, today time.Time) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Pauses.GetByPauseID(ctx, pauseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDeal.ErrPauseNotFound
			}
			return err
		}
		d, err := r.Deals.GetByIDForUpdate(ctx, p.DealID)
		if err != nil {
			return err
		}
		if d.Status != domainDeal.StatusActive && d.Status != domainDeal.StatusPaused {
			return domainDeal.ErrInvalidTransition
		}
		p.EndDate = dates.DateOnly(today)
		if err := r.Pauses.Save(ctx, p); err != nil {
			return err
		}
		d.Status = domainDeal.StatusActive
		d.SubStatus = domainDeal.SubStatusNone
		d.StatusUpdatedAt = time.Now().UTC()
		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}
		return regenerate(ctx, r, d)
	})
}

// DeletePause removes a pause outright. The deal only flips back to ACTIVE
// when it was PAUSED and no surviving pause covers today.
func (u *Usecase) DeletePause(ctx context.Context, pauseID string, today time.Time) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Pauses.GetByPauseID(ctx, pauseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainDeal.ErrPauseNotFound
			}
			return err
		}
		d, err := r.Deals.GetByIDForUpdate(ctx, p.DealID)
		if err != nil {
			return err
		}
		if err := r.Pauses.Delete(ctx, p); err != nil {
			return err
		}
		remaining, err := r.Pauses.ListByDealID(ctx, d.ID)
		if err != nil {
			return err
		}
		covered := false
		for _, rp := range remaining {
			if (dates.Interval{Start: rp.StartDate, End: rp.EndDate}).Contains(today) {
				covered = true
				break
			}
		}
		if !covered && d.Status == domainDeal.StatusPaused {
			d.Status = domainDeal.StatusActive
			d.SubStatus = domainDeal.SubStatusNone
			d.StatusUpdatedAt = time.Now().UTC()
			if err := r.Deals.Save(ctx, d); err != nil {
				return err
			}
		}
		return regenerate(ctx, r, d)
	})
}

// Regenerate rebuilds the schedule from current terms and pauses. It is
// idempotent: unchanged inputs produce an identical row set.
func (u *Usecase) Regenerate(ctx context.Context, dealID string) error {
	return u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domainDeal.Deal) error {
		return regenerate(ctx, r, d)
	})
}

// regenerate is the shared full-replace step: delete every persisted row for
// the deal, then insert the freshly generated set. Running inside the
// caller's transaction keeps the empty-schedule window invisible.
func regenerate(ctx context.Context, r uow.Repos, d *domainDeal.Deal) error {
	if !d.ScheduleType.Generated() {
		return nil
	}
	pauses, err := r.Pauses.ListByDealID(ctx, d.ID)
	if err != nil {
		return err
	}
	rows := schedule.Generate(schedule.TermsOf(d), schedule.Intervals(pauses))
	if err := r.Schedule.DeleteByDealID(ctx, d.ID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	persisted := make([]domainDeal.ScheduleRow, 0, len(rows))
	for _, row := range rows {
		persisted = append(persisted, domainDeal.ScheduleRow{
			DealID:       d.ID,
			Period:       row.Period,
			DueDate:      row.DueDate,
			PrincipalDue: row.PrincipalDue,
			InterestDue:  row.InterestDue,
			TotalDue:     row.TotalDue,
		})
	}
	return r.Schedule.BulkInsert(ctx, persisted)
}
