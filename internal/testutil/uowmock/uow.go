package uowmock

import (
	"context"
	"errors"

	"lombard-core/internal/domain/deal"
	"lombard-core/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errNoDeal = errors.New("uowmock: no deal configured for WithinDealTx")

// UoW satisfies uow.UnitOfWork without any transaction semantics: the
// callback runs directly against the configured Repos. Set Deal for
// WithinDealTx flows, or override the Fn fields for full control.
type UoW struct {
	Repos uow.Repos
	Deal  *deal.Deal

	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinDealTxFn func(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error
}

func New(r uow.Repos) *UoW { return &UoW{Repos: r} }

func (m *UoW) WithDeal(d *deal.Deal) *UoW {
	m.Deal = d
	return m
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinDealTx(ctx context.Context, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	if m.WithinDealTxFn != nil {
		return m.WithinDealTxFn(ctx, dealID, fn)
	}
	if m.Deal == nil {
		return errNoDeal
	}
	if m.Deal.DealID != dealID {
		return deal.ErrNotFound
	}
	return fn(m.Repos, m.Deal)
}
