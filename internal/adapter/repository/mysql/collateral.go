package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	collateralDomain "lombard-core/internal/domain/collateral"
)

type LinkRepository struct{ db *gorm.DB }

func NewLinkRepository(db *gorm.DB) *LinkRepository { return &LinkRepository{db: db} }

func (r *LinkRepository) Create(ctx context.Context, l *collateralDomain.Link) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LinkRepository) Save(ctx context.Context, l *collateralDomain.Link) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LinkRepository) GetByLinkID(ctx context.Context, linkID string) (*collateralDomain.Link, error) {
	var out collateralDomain.Link
	res := r.db.WithContext(ctx).Where("link_id = ?", linkID).First(&out)
	return &out, res.Error
}

func (r *LinkRepository) GetByLinkIDForUpdate(ctx context.Context, linkID string) (*collateralDomain.Link, error) {
	var out collateralDomain.Link
	res := withRowLock(r.db.WithContext(ctx)).Where("link_id = ?", linkID).First(&out)
	return &out, res.Error
}

func (r *LinkRepository) ListActiveByDealID(ctx context.Context, dealID uint64) ([]collateralDomain.Link, error) {
	var out []collateralDomain.Link
	res := r.db.WithContext(ctx).
		Where("deal_id = ? AND status = ?", dealID, collateralDomain.LinkActive).
		Order("started_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LinkRepository) ListActiveByAssetID(ctx context.Context, assetID uint64) ([]collateralDomain.Link, error) {
	var out []collateralDomain.Link
	res := r.db.WithContext(ctx).
		Where("asset_id = ? AND status = ?", assetID, collateralDomain.LinkActive).
		Find(&out)
	return out, res.Error
}

func (r *LinkRepository) ListByDealID(ctx context.Context, dealID uint64) ([]collateralDomain.Link, error) {
	var out []collateralDomain.Link
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("started_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*collateralDomain.Asset, error) {
	var out collateralDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*collateralDomain.Asset, error) {
	var out collateralDomain.Asset
	res := withRowLock(r.db.WithContext(ctx)).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByID(ctx context.Context, id uint64) (*collateralDomain.Asset, error) {
	var out collateralDomain.Asset
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*collateralDomain.Asset, error) {
	var out collateralDomain.Asset
	res := withRowLock(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) Save(ctx context.Context, a *collateralDomain.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// LatestValuation orders by creation time, not valuation date: the most
// recently recorded appraisal wins even when backdated.
func (r *AssetRepository) LatestValuation(ctx context.Context, assetID uint64) (*collateralDomain.Valuation, error) {
	var out collateralDomain.Valuation
	res := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("created_at DESC, id DESC").
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, collateralDomain.ErrNoValuation
	}
	return &out, res.Error
}

type ChainRepository struct{ db *gorm.DB }

func NewChainRepository(db *gorm.DB) *ChainRepository { return &ChainRepository{db: db} }

func (r *ChainRepository) Append(ctx context.Context, rec *collateralDomain.ChainRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *ChainRepository) ListByDealID(ctx context.Context, dealID uint64) ([]collateralDomain.ChainRecord, error) {
	var out []collateralDomain.ChainRecord
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
