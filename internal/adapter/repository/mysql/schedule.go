package mysql

import (
	"context"

	"gorm.io/gorm"

	dealDomain "lombard-core/internal/domain/deal"
)

type ScheduleRepository struct{ db *gorm.DB }

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository { return &ScheduleRepository{db: db} }

// DeleteByDealID is a hard delete: schedule rows are a disposable cache and
// keep no soft-delete trail.
func (r *ScheduleRepository) DeleteByDealID(ctx context.Context, dealID uint64) error {
	return r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Delete(&dealDomain.ScheduleRow{}).Error
}

func (r *ScheduleRepository) BulkInsert(ctx context.Context, rows []dealDomain.ScheduleRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ScheduleRepository) ListByDealID(ctx context.Context, dealID uint64) ([]dealDomain.ScheduleRow, error) {
	var out []dealDomain.ScheduleRow
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("period ASC").
		Find(&out)
	return out, res.Error
}
