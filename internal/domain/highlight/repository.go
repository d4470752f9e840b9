package highlight

import "context"

// Store is the process-lifetime mapping from match id to discovery state.
// Writes are last-writer-wins; Put and RecordError each replace the other's
// field so a record never carries both highlights and an error.
type Store interface {
	Get(ctx context.Context, matchID string) (Record, bool, error)
	Put(ctx context.Context, matchID string, items []Highlight) error
	RecordError(ctx context.Context, matchID, message string) error
	ClearError(ctx context.Context, matchID string) error
	Clear(ctx context.Context, matchID string) error
}
