package uow

import (
	"context"

	"lombard-core/internal/domain/collateral"
	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/ledger"
)

// Repos bundles every repository bound to one transaction. Multi-step flows
// (regenerate, replace, foreclosure) must issue all their writes through the
// same Repos so they commit or roll back as a unit.
type Repos struct {
	Deals    deal.Repository
	Pauses   deal.PauseRepository
	Schedule deal.ScheduleRepository
	Ledger   ledger.Repository
	Links    collateral.LinkRepository
	Assets   collateral.AssetRepository
	Chain    collateral.ChainRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the deal row first, then pass it in
	WithinDealTx(ctx context.Context, dealID string, fn func(r Repos, d *deal.Deal) error) error
}
