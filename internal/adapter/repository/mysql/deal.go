package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dealDomain "lombard-core/internal/domain/deal"
)

// withRowLock adds FOR UPDATE on engines that support it. The sqlite test
// database has no row locks; transactions there serialize on the file anyway.
func withRowLock(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

type DealRepository struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) *DealRepository { return &DealRepository{db: db} }

func (r *DealRepository) Create(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealRepository) Save(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DealRepository) GetByDealID(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).Where("deal_id = ?", dealID).First(&out)
	return &out, res.Error
}

func (r *DealRepository) GetByDealIDForUpdate(ctx context.Context, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := withRowLock(r.db.WithContext(ctx)).Where("deal_id = ?", dealID).First(&out)
	return &out, res.Error
}

func (r *DealRepository) GetByID(ctx context.Context, id uint64) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *DealRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := withRowLock(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}
