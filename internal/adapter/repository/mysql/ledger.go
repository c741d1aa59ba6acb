package mysql

import (
	"context"

	"gorm.io/gorm"

	ledgerDomain "lombard-core/internal/domain/ledger"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

// Append inserts one entry. The ledger is append-only by contract: there is
// deliberately no update or delete on this repository.
func (r *LedgerRepository) Append(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LedgerRepository) ListByDealID(ctx context.Context, dealID uint64) ([]ledgerDomain.Entry, error) {
	var out []ledgerDomain.Entry
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("occurred_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
