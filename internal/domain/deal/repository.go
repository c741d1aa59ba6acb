package deal

import "context"

type Repository interface {
	Create(ctx context.Context, d *Deal) error
	GetByDealID(ctx context.Context, dealID string) (*Deal, error)
	// GetByDealIDForUpdate row-locks the deal for the current transaction.
	GetByDealIDForUpdate(ctx context.Context, dealID string) (*Deal, error)
	GetByID(ctx context.Context, id uint64) (*Deal, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Deal, error)
	Save(ctx context.Context, d *Deal) error
}

type PauseRepository interface {
	Create(ctx context.Context, p *PausePeriod) error
	GetByPauseID(ctx context.Context, pauseID string) (*PausePeriod, error)
	ListByDealID(ctx context.Context, dealID uint64) ([]PausePeriod, error)
	Save(ctx context.Context, p *PausePeriod) error
	Delete(ctx context.Context, p *PausePeriod) error
}

// ScheduleRepository persists the derived schedule cache. Regeneration is an
// atomic full replace from the consumer's point of view: DeleteByDealID then
// BulkInsert inside one transaction.
type ScheduleRepository interface {
	DeleteByDealID(ctx context.Context, dealID uint64) error
	BulkInsert(ctx context.Context, rows []ScheduleRow) error
	ListByDealID(ctx context.Context, dealID uint64) ([]ScheduleRow, error)
}
