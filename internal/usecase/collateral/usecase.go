package collateral

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domainCollateral "lombard-core/internal/domain/collateral"
	domainDeal "lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
	"lombard-core/internal/domain/uow"
	"lombard-core/internal/usecase/balance"
	"lombard-core/pkg/dates"
	"lombard-core/pkg/id"
)

var hundred = decimal.NewFromInt(100)

// Usecase drives the collateral lifecycle: pledge, valuation snapshot,
// replacement chains, release, and mass foreclosure on default. Every
// multi-write flow runs inside one transaction through the unit of work, so
// a crash mid-sequence cannot leave an asset half-released.
type Usecase struct {
	deals  domainDeal.Repository
	links  domainCollateral.LinkRepository
	assets domainCollateral.AssetRepository
	chain  domainCollateral.ChainRepository
	uow    uow.UnitOfWork
}

func NewUsecase(
	deals domainDeal.Repository,
	links domainCollateral.LinkRepository,
	assets domainCollateral.AssetRepository,
	chain domainCollateral.ChainRepository,
	tx uow.UnitOfWork,
) *Usecase {
	return &Usecase{deals: deals, links: links, assets: assets, chain: chain, uow: tx}
}

// GetLink is a plain read of one collateral link.
func (u *Usecase) GetLink(ctx context.Context, linkID string) (*LinkDTO, error) {
	l, err := u.links.GetByLinkID(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainCollateral.ErrLinkNotFound
		}
		return nil, err
	}
	d, err := u.deals.GetByID(ctx, l.DealID)
	if err != nil {
		return nil, err
	}
	a, err := u.assets.GetByID(ctx, l.AssetID)
	if err != nil {
		return nil, err
	}
	out := toLinkDTO(l, d.DealID, a.AssetID)
	return &out, nil
}

// Chain lists the deal's replacement audit trail, oldest first.
func (u *Usecase) Chain(ctx context.Context, dealID string) ([]ChainRecordDTO, error) {
	d, err := u.deals.GetByDealID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainDeal.ErrNotFound
		}
		return nil, err
	}
	recs, err := u.chain.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	out := make([]ChainRecordDTO, 0, len(recs))
	for _, rec := range recs {
		dto := ChainRecordDTO{DealID: d.DealID, Reason: rec.Reason, CreatedAt: rec.CreatedAt}
		if a, err := u.assets.GetByID(ctx, rec.OldAssetID); err == nil {
			dto.OldAssetID = a.AssetID
		}
		if a, err := u.assets.GetByID(ctx, rec.NewAssetID); err == nil {
			dto.NewAssetID = a.AssetID
		}
		out = append(out, dto)
	}
	return out, nil
}

// Pledge creates an active link between a deal and an asset. An indivisible
// asset must not already be actively pledged anywhere; a divisible asset
// needs a units figure covered by its available pool. The valuation/LTV
// snapshot is captured immediately.
func (u *Usecase) Pledge(ctx context.Context, in PledgeInput, today time.Time) (*LinkDTO, error) {
	var dto *LinkDTO
	err := u.uow.WithinDealTx(ctx, in.DealID, func(r uow.Repos, d *domainDeal.Deal) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, in.AssetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCollateral.ErrAssetNotFound
			}
			return err
		}
		if err := claimAsset(ctx, r, a, in.PledgedUnits); err != nil {
			return err
		}
		l := &domainCollateral.Link{
			LinkID:       id.NewID32(),
			DealID:       d.ID,
			AssetID:      a.ID,
			Status:       domainCollateral.LinkActive,
			StartedAt:    dates.DateOnly(today),
			PledgedUnits: in.PledgedUnits,
		}
		if err := snapshotValuation(ctx, r, l, d.ID); err != nil {
			return err
		}
		if err := r.Links.Create(ctx, l); err != nil {
			return err
		}
		out := toLinkDTO(l, d.DealID, a.AssetID)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Evaluate refreshes the link's valuation/LTV snapshot from the asset's most
// recent valuation and the deal's current outstanding principal. Re-running
// it overwrites the previous snapshot; no history is kept here.
func (u *Usecase) Evaluate(ctx context.Context, linkID string) (*LinkDTO, error) {
	var dto *LinkDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Links.GetByLinkIDForUpdate(ctx, linkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCollateral.ErrLinkNotFound
			}
			return err
		}
		if err := snapshotValuation(ctx, r, l, l.DealID); err != nil {
			return err
		}
		if err := r.Links.Save(ctx, l); err != nil {
			return err
		}
		d, err := r.Deals.GetByID(ctx, l.DealID)
		if err != nil {
			return err
		}
		a, err := r.Assets.GetByID(ctx, l.AssetID)
		if err != nil {
			return err
		}
		out := toLinkDTO(l, d.DealID, a.AssetID)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Replace swaps the collateral behind a link: the old link ends as replaced
// and its asset is released (units returned to the pool), a new active link
// is created for the new asset, and one immutable chain record ties the two
// assets together.
func (u *Usecase) Replace(ctx context.Context, in ReplaceInput, today time.Time) (*LinkDTO, error) {
	var dto *LinkDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		old, err := r.Links.GetByLinkIDForUpdate(ctx, in.LinkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCollateral.ErrLinkNotFound
			}
			return err
		}
		if old.Status != domainCollateral.LinkActive {
			return domainCollateral.ErrLinkNotActive
		}
		d, err := r.Deals.GetByIDForUpdate(ctx, old.DealID)
		if err != nil {
			return err
		}
		oldAsset, err := r.Assets.GetByIDForUpdate(ctx, old.AssetID)
		if err != nil {
			return err
		}
		// self-replace re-pledges the same row: mutate one struct so the
		// units returned below are visible to the claim
		newAsset := oldAsset
		if in.NewAssetID != oldAsset.AssetID {
			newAsset, err = r.Assets.GetByAssetIDForUpdate(ctx, in.NewAssetID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domainCollateral.ErrAssetNotFound
				}
				return err
			}
		}

		now := dates.DateOnly(today)
		old.Status = domainCollateral.LinkReplaced
		old.EndedAt = &now
		if err := r.Links.Save(ctx, old); err != nil {
			return err
		}
		if err := returnAsset(ctx, r, oldAsset, old.PledgedUnits, domainCollateral.AssetReleased); err != nil {
			return err
		}

		if err := claimAsset(ctx, r, newAsset, in.PledgedUnits); err != nil {
			return err
		}
		repl := &domainCollateral.Link{
			LinkID:       id.NewID32(),
			DealID:       old.DealID,
			AssetID:      newAsset.ID,
			Status:       domainCollateral.LinkActive,
			StartedAt:    now,
			PledgedUnits: in.PledgedUnits,
		}
		if err := snapshotValuation(ctx, r, repl, old.DealID); err != nil {
			return err
		}
		if err := r.Links.Create(ctx, repl); err != nil {
			return err
		}
		if err := r.Chain.Append(ctx, &domainCollateral.ChainRecord{
			DealID:     old.DealID,
			OldAssetID: oldAsset.ID,
			NewAssetID: newAsset.ID,
			Reason:     in.Reason,
		}); err != nil {
			return err
		}
		out := toLinkDTO(repl, d.DealID, newAsset.AssetID)
		dto = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Release ends an active link. The asset itself only flips to released once
// no other active link references it, so fractional pledges on a divisible
// asset survive each other's release. Pledged units go back to the pool.
func (u *Usecase) Release(ctx context.Context, linkID string, today time.Time) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Links.GetByLinkIDForUpdate(ctx, linkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainCollateral.ErrLinkNotFound
			}
			return err
		}
		if l.Status != domainCollateral.LinkActive {
			return domainCollateral.ErrLinkNotActive
		}
		now := dates.DateOnly(today)
		l.Status = domainCollateral.LinkReleased
		l.EndedAt = &now
		if err := r.Links.Save(ctx, l); err != nil {
			return err
		}

		a, err := r.Assets.GetByIDForUpdate(ctx, l.AssetID)
		if err != nil {
			return err
		}
		if l.PledgedUnits != nil {
			a.AvailableUnits = a.AvailableUnits.Add(*l.PledgedUnits)
		}
		others, err := r.Links.ListActiveByAssetID(ctx, a.ID)
		if err != nil {
			return err
		}
		if len(others) == 0 {
			a.Status = domainCollateral.AssetReleased
		}
		return r.Assets.Save(ctx, a)
	})
}

// Default moves the deal to DEFAULT with sub-status "foreclosure" and
// forecloses every active collateral link: links and assets flip to
// foreclosed, and each asset's latest valuation is posted to the ledger as a
// restricted collateral_sale_proceeds entry. The amount is a provisional
// mark, not an actual sale price.
func (u *Usecase) Default(ctx context.Context, dealID string, today time.Time) (*ForeclosureDTO, error) {
	var dto *ForeclosureDTO
	err := u.uow.WithinDealTx(ctx, dealID, func(r uow.Repos, d *domainDeal.Deal) error {
		if d.Status != domainDeal.StatusActive && d.Status != domainDeal.StatusPaused {
			return domainDeal.ErrInvalidTransition
		}
		d.Status = domainDeal.StatusDefault
		d.SubStatus = domainDeal.SubStatusForeclosure
		d.StatusUpdatedAt = time.Now().UTC()
		if err := r.Deals.Save(ctx, d); err != nil {
			return err
		}

		active, err := r.Links.ListActiveByDealID(ctx, d.ID)
		if err != nil {
			return err
		}
		now := dates.DateOnly(today)
		out := &ForeclosureDTO{DealID: d.DealID}
		for i := range active {
			l := &active[i]
			l.Status = domainCollateral.LinkForeclosed
			l.EndedAt = &now
			if err := r.Links.Save(ctx, l); err != nil {
				return err
			}
			a, err := r.Assets.GetByIDForUpdate(ctx, l.AssetID)
			if err != nil {
				return err
			}
			a.Status = domainCollateral.AssetForeclosed
			if err := r.Assets.Save(ctx, a); err != nil {
				return err
			}

			mark := decimal.Zero
			if v, err := r.Assets.LatestValuation(ctx, a.ID); err == nil {
				mark = v.Value
			} else if !errors.Is(err, domainCollateral.ErrNoValuation) {
				return err
			}
			if err := r.Ledger.Append(ctx, &ledger.Entry{
				EntryID:         id.NewID32(),
				DealID:          d.ID,
				EntryType:       ledger.TypeCollateralSaleProceeds,
				Amount:          mark.Round(2),
				Currency:        d.Currency,
				OccurredAt:      now,
				VisibilityScope: ledger.ScopeRestricted,
			}); err != nil {
				return err
			}
			out.EntriesPosted++
			out.ForeclosedLinks = append(out.ForeclosedLinks, toLinkDTO(l, d.DealID, a.AssetID))
		}
		dto = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// claimAsset performs the read-before-write pledge guards and flips the asset
// to pledged, decrementing the unit pool for divisible assets.
func claimAsset(ctx context.Context, r uow.Repos, a *domainCollateral.Asset, units *decimal.Decimal) error {
	if a.Status == domainCollateral.AssetForeclosed {
		return domainCollateral.ErrAssetPledged
	}
	if a.Divisible {
		if units == nil || !units.IsPositive() {
			return domainCollateral.ErrUnitsRequired
		}
		if a.AvailableUnits.LessThan(*units) {
			return domainCollateral.ErrInsufficientUnits
		}
		a.AvailableUnits = a.AvailableUnits.Sub(*units)
	} else {
		active, err := r.Links.ListActiveByAssetID(ctx, a.ID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return domainCollateral.ErrAssetPledged
		}
	}
	a.Status = domainCollateral.AssetPledged
	return r.Assets.Save(ctx, a)
}

// returnAsset is claimAsset's inverse for replace flows: units back to the
// pool and the asset marked with the given terminal status.
func returnAsset(ctx context.Context, r uow.Repos, a *domainCollateral.Asset, units *decimal.Decimal, status domainCollateral.AssetStatus) error {
	if units != nil {
		a.AvailableUnits = a.AvailableUnits.Add(*units)
	}
	a.Status = status
	return r.Assets.Save(ctx, a)
}

// snapshotValuation stamps the link with the asset's latest recorded
// valuation and the LTV against the deal's outstanding principal. Either
// figure being non-positive (or the valuation missing) leaves the LTV null.
func snapshotValuation(ctx context.Context, r uow.Repos, l *domainCollateral.Link, dealNumericID uint64) error {
	l.ValuationAtPledge = nil
	l.LTVAtPledge = nil

	v, err := r.Assets.LatestValuation(ctx, l.AssetID)
	if err != nil {
		if errors.Is(err, domainCollateral.ErrNoValuation) {
			return nil
		}
		return err
	}
	val := v.Value
	l.ValuationAtPledge = &val

	entries, err := r.Ledger.ListByDealID(ctx, dealNumericID)
	if err != nil {
		return err
	}
	outstanding := balance.Compute(entries).OutstandingPrincipal
	if val.IsPositive() && outstanding.IsPositive() {
		ltv := outstanding.Div(val).Mul(hundred).Round(2)
		l.LTVAtPledge = &ltv
	}
	return nil
}
