package mysql

import (
	"context"

	"gorm.io/gorm"

	dealDomain "lombard-core/internal/domain/deal"
)

type PauseRepository struct{ db *gorm.DB }

func NewPauseRepository(db *gorm.DB) *PauseRepository { return &PauseRepository{db: db} }

func (r *PauseRepository) Create(ctx context.Context, p *dealDomain.PausePeriod) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PauseRepository) Save(ctx context.Context, p *dealDomain.PausePeriod) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PauseRepository) GetByPauseID(ctx context.Context, pauseID string) (*dealDomain.PausePeriod, error) {
	var out dealDomain.PausePeriod
	res := r.db.WithContext(ctx).Where("pause_id = ?", pauseID).First(&out)
	return &out, res.Error
}

func (r *PauseRepository) ListByDealID(ctx context.Context, dealID uint64) ([]dealDomain.PausePeriod, error) {
	var out []dealDomain.PausePeriod
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("start_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *PauseRepository) Delete(ctx context.Context, p *dealDomain.PausePeriod) error {
	return r.db.WithContext(ctx).Delete(p).Error
}
