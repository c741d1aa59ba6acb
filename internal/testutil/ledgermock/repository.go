package ledgermock

import (
	"context"

	domain "lombard-core/internal/domain/ledger"
)

// Repo is a function-backed mock that satisfies domain.Repository. Without
// overrides it behaves as an in-memory append-only ledger.
type Repo struct {
	Entries []domain.Entry

	AppendFn       func(ctx context.Context, e *domain.Entry) error
	ListByDealIDFn func(ctx context.Context, dealID uint64) ([]domain.Entry, error)
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	e.ID = uint64(len(m.Entries) + 1)
	m.Entries = append(m.Entries, *e)
	return nil
}

func (m *Repo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.Entry, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	var out []domain.Entry
	for _, e := range m.Entries {
		if e.DealID == dealID {
			out = append(out, e)
		}
	}
	return out, nil
}
