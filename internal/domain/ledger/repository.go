package ledger

import "context"

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByDealID(ctx context.Context, dealID uint64) ([]Entry, error)
}
