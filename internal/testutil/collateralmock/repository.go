package collateralmock

import (
	"context"

	domain "lombard-core/internal/domain/collateral"
)

// LinkRepo is a function-backed mock that satisfies domain.LinkRepository.
// Without overrides it keeps links in memory, which covers most engine tests.
type LinkRepo struct {
	Links []domain.Link

	CreateFn               func(ctx context.Context, l *domain.Link) error
	GetByLinkIDFn          func(ctx context.Context, linkID string) (*domain.Link, error)
	GetByLinkIDForUpdateFn func(ctx context.Context, linkID string) (*domain.Link, error)
	ListActiveByDealIDFn   func(ctx context.Context, dealID uint64) ([]domain.Link, error)
	ListActiveByAssetIDFn  func(ctx context.Context, assetID uint64) ([]domain.Link, error)
	ListByDealIDFn         func(ctx context.Context, dealID uint64) ([]domain.Link, error)
	SaveFn                 func(ctx context.Context, l *domain.Link) error
}

func (m *LinkRepo) Create(ctx context.Context, l *domain.Link) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	l.ID = uint64(len(m.Links) + 1)
	m.Links = append(m.Links, *l)
	return nil
}

func (m *LinkRepo) find(linkID string) (*domain.Link, error) {
	for i := range m.Links {
		if m.Links[i].LinkID == linkID {
			cp := m.Links[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrLinkNotFound
}

func (m *LinkRepo) GetByLinkID(ctx context.Context, linkID string) (*domain.Link, error) {
	if m.GetByLinkIDFn != nil {
		return m.GetByLinkIDFn(ctx, linkID)
	}
	return m.find(linkID)
}

func (m *LinkRepo) GetByLinkIDForUpdate(ctx context.Context, linkID string) (*domain.Link, error) {
	if m.GetByLinkIDForUpdateFn != nil {
		return m.GetByLinkIDForUpdateFn(ctx, linkID)
	}
	return m.find(linkID)
}

func (m *LinkRepo) ListActiveByDealID(ctx context.Context, dealID uint64) ([]domain.Link, error) {
	if m.ListActiveByDealIDFn != nil {
		return m.ListActiveByDealIDFn(ctx, dealID)
	}
	var out []domain.Link
	for _, l := range m.Links {
		if l.DealID == dealID && l.Status == domain.LinkActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *LinkRepo) ListActiveByAssetID(ctx context.Context, assetID uint64) ([]domain.Link, error) {
	if m.ListActiveByAssetIDFn != nil {
		return m.ListActiveByAssetIDFn(ctx, assetID)
	}
	var out []domain.Link
	for _, l := range m.Links {
		if l.AssetID == assetID && l.Status == domain.LinkActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *LinkRepo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.Link, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	var out []domain.Link
	for _, l := range m.Links {
		if l.DealID == dealID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *LinkRepo) Save(ctx context.Context, l *domain.Link) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	for i := range m.Links {
		if m.Links[i].LinkID == l.LinkID {
			m.Links[i] = *l
			return nil
		}
	}
	m.Links = append(m.Links, *l)
	return nil
}

// AssetRepo mocks domain.AssetRepository over in-memory assets/valuations.
type AssetRepo struct {
	Assets     []domain.Asset
	Valuations []domain.Valuation

	GetByAssetIDFn          func(ctx context.Context, assetID string) (*domain.Asset, error)
	GetByAssetIDForUpdateFn func(ctx context.Context, assetID string) (*domain.Asset, error)
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Asset, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Asset, error)
	SaveFn                  func(ctx context.Context, a *domain.Asset) error
	LatestValuationFn       func(ctx context.Context, assetID uint64) (*domain.Valuation, error)
}

func (m *AssetRepo) findByPublicID(assetID string) (*domain.Asset, error) {
	for i := range m.Assets {
		if m.Assets[i].AssetID == assetID {
			cp := m.Assets[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrAssetNotFound
}

func (m *AssetRepo) findByID(id uint64) (*domain.Asset, error) {
	for i := range m.Assets {
		if m.Assets[i].ID == id {
			cp := m.Assets[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrAssetNotFound
}

func (m *AssetRepo) GetByAssetID(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDFn != nil {
		return m.GetByAssetIDFn(ctx, assetID)
	}
	return m.findByPublicID(assetID)
}

func (m *AssetRepo) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*domain.Asset, error) {
	if m.GetByAssetIDForUpdateFn != nil {
		return m.GetByAssetIDForUpdateFn(ctx, assetID)
	}
	return m.findByPublicID(assetID)
}

func (m *AssetRepo) GetByID(ctx context.Context, id uint64) (*domain.Asset, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.findByID(id)
}

func (m *AssetRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Asset, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.findByID(id)
}

func (m *AssetRepo) Save(ctx context.Context, a *domain.Asset) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	for i := range m.Assets {
		if m.Assets[i].AssetID == a.AssetID {
			m.Assets[i] = *a
			return nil
		}
	}
	m.Assets = append(m.Assets, *a)
	return nil
}

func (m *AssetRepo) LatestValuation(ctx context.Context, assetID uint64) (*domain.Valuation, error) {
	if m.LatestValuationFn != nil {
		return m.LatestValuationFn(ctx, assetID)
	}
	var latest *domain.Valuation
	for i := range m.Valuations {
		v := &m.Valuations[i]
		if v.AssetID != assetID {
			continue
		}
		if latest == nil || v.CreatedAt.After(latest.CreatedAt) {
			latest = v
		}
	}
	if latest == nil {
		return nil, domain.ErrNoValuation
	}
	cp := *latest
	return &cp, nil
}

// ChainRepo mocks domain.ChainRepository.
type ChainRepo struct {
	Records []domain.ChainRecord

	AppendFn       func(ctx context.Context, rec *domain.ChainRecord) error
	ListByDealIDFn func(ctx context.Context, dealID uint64) ([]domain.ChainRecord, error)
}

func (m *ChainRepo) Append(ctx context.Context, rec *domain.ChainRecord) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, rec)
	}
	rec.ID = uint64(len(m.Records) + 1)
	m.Records = append(m.Records, *rec)
	return nil
}

func (m *ChainRepo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.ChainRecord, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	var out []domain.ChainRecord
	for _, rec := range m.Records {
		if rec.DealID == dealID {
			out = append(out, rec)
		}
	}
	return out, nil
}
