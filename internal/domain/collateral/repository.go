package collateral

import "context"

type LinkRepository interface {
	Create(ctx context.Context, l *Link) error
	GetByLinkID(ctx context.Context, linkID string) (*Link, error)
	GetByLinkIDForUpdate(ctx context.Context, linkID string) (*Link, error)
	ListActiveByDealID(ctx context.Context, dealID uint64) ([]Link, error)
	ListActiveByAssetID(ctx context.Context, assetID uint64) ([]Link, error)
	ListByDealID(ctx context.Context, dealID uint64) ([]Link, error)
	Save(ctx context.Context, l *Link) error
}

type AssetRepository interface {
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	GetByAssetIDForUpdate(ctx context.Context, assetID string) (*Asset, error)
	GetByID(ctx context.Context, id uint64) (*Asset, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Asset, error)
	Save(ctx context.Context, a *Asset) error
	// LatestValuation returns the most recently recorded valuation for the
	// asset (ordered by created_at, not valued_at), or ErrNoValuation.
	LatestValuation(ctx context.Context, assetID uint64) (*Valuation, error)
}

// ChainRepository is append-only; there is deliberately no update or delete.
type ChainRepository interface {
	Append(ctx context.Context, rec *ChainRecord) error
	ListByDealID(ctx context.Context, dealID uint64) ([]ChainRecord, error)
}
