package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Deals:    &DealRepository{db: tx},
		Pauses:   &PauseRepository{db: tx},
		Schedule: &ScheduleRepository{db: tx},
		Ledger:   &LedgerRepository{db: tx},
		Links:    &LinkRepository{db: tx},
		Assets:   &AssetRepository{db: tx},
		Chain:    &ChainRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinDealTx(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the deal row up-front to prevent races
		d, err := r.Deals.GetByDealIDForUpdate(ctx, dealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return deal.ErrNotFound
			}
			return err
		}
		return fn(r, d)
	})
}
