package selection

import "context"

type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	UpsertEntries(ctx context.Context, entries []Entry) error
}
