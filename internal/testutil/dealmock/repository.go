package dealmock

import (
	"context"

	domain "lombard-core/internal/domain/deal"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, d *domain.Deal) error
	GetByDealIDFn          func(ctx context.Context, dealID string) (*domain.Deal, error)
	GetByDealIDForUpdateFn func(ctx context.Context, dealID string) (*domain.Deal, error)
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Deal, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Deal, error)
	SaveFn                 func(ctx context.Context, d *domain.Deal) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Deal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDealID(ctx context.Context, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDFn != nil {
		return m.GetByDealIDFn(ctx, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByDealIDForUpdate(ctx context.Context, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDForUpdateFn != nil {
		return m.GetByDealIDForUpdateFn(ctx, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Deal, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Deal, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, d *domain.Deal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

// PauseRepo mocks domain.PauseRepository.
type PauseRepo struct {
	CreateFn       func(ctx context.Context, p *domain.PausePeriod) error
	GetByPauseIDFn func(ctx context.Context, pauseID string) (*domain.PausePeriod, error)
	ListByDealIDFn func(ctx context.Context, dealID uint64) ([]domain.PausePeriod, error)
	SaveFn         func(ctx context.Context, p *domain.PausePeriod) error
	DeleteFn       func(ctx context.Context, p *domain.PausePeriod) error
}

func (m *PauseRepo) Create(ctx context.Context, p *domain.PausePeriod) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PauseRepo) GetByPauseID(ctx context.Context, pauseID string) (*domain.PausePeriod, error) {
	if m.GetByPauseIDFn != nil {
		return m.GetByPauseIDFn(ctx, pauseID)
	}
	return nil, context.Canceled
}

func (m *PauseRepo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.PausePeriod, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	return nil, nil
}

func (m *PauseRepo) Save(ctx context.Context, p *domain.PausePeriod) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *PauseRepo) Delete(ctx context.Context, p *domain.PausePeriod) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, p)
	}
	return nil
}

// ScheduleRepo mocks domain.ScheduleRepository. The default implementation
// keeps rows in memory so regeneration flows can be asserted end to end.
type ScheduleRepo struct {
	Rows []domain.ScheduleRow

	DeleteByDealIDFn func(ctx context.Context, dealID uint64) error
	BulkInsertFn     func(ctx context.Context, rows []domain.ScheduleRow) error
	ListByDealIDFn   func(ctx context.Context, dealID uint64) ([]domain.ScheduleRow, error)
}

func (m *ScheduleRepo) DeleteByDealID(ctx context.Context, dealID uint64) error {
	if m.DeleteByDealIDFn != nil {
		return m.DeleteByDealIDFn(ctx, dealID)
	}
	kept := m.Rows[:0]
	for _, r := range m.Rows {
		if r.DealID != dealID {
			kept = append(kept, r)
		}
	}
	m.Rows = kept
	return nil
}

func (m *ScheduleRepo) BulkInsert(ctx context.Context, rows []domain.ScheduleRow) error {
	if m.BulkInsertFn != nil {
		return m.BulkInsertFn(ctx, rows)
	}
	m.Rows = append(m.Rows, rows...)
	return nil
}

func (m *ScheduleRepo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.ScheduleRow, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	var out []domain.ScheduleRow
	for _, r := range m.Rows {
		if r.DealID == dealID {
			out = append(out, r)
		}
	}
	return out, nil
}
