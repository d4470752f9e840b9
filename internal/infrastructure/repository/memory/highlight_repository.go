package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/match-highlights/internal/domain/highlight"
)

// HighlightRepository keeps discovery records in process memory. Data lives
// only for the lifetime of the process; a restart clears all of it.
type HighlightRepository struct {
	mu    sync.RWMutex
	items map[string]highlight.Record
	now   func() time.Time
}

func NewHighlightRepository() *HighlightRepository {
	return &HighlightRepository{
		items: make(map[string]highlight.Record),
		now:   time.Now,
	}
}

func (r *HighlightRepository) Get(_ context.Context, matchID string) (highlight.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[matchID]
	if !ok {
		return highlight.Record{MatchID: matchID}, false, nil
	}

	return record, true, nil
}

// Put stores the highlight list and drops any stored error: data and error
// are mutually exclusive on a record.
func (r *HighlightRepository) Put(_ context.Context, matchID string, items []highlight.Highlight) error {
	copied := make([]highlight.Highlight, len(items))
	copy(copied, items)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[matchID] = highlight.Record{
		MatchID:    matchID,
		Highlights: copied,
		UpdatedAt:  r.now().UTC(),
	}

	return nil
}

// RecordError stores the failure message and drops any stored highlights.
func (r *HighlightRepository) RecordError(_ context.Context, matchID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[matchID] = highlight.Record{
		MatchID:   matchID,
		Error:     message,
		UpdatedAt: r.now().UTC(),
	}

	return nil
}

// ClearError removes only a stored error, leaving stored highlights intact.
// Clearing an unknown match is a no-op.
func (r *HighlightRepository) ClearError(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.items[matchID]
	if !ok || record.Error == "" {
		return nil
	}

	record.Error = ""
	record.UpdatedAt = r.now().UTC()
	r.items[matchID] = record

	return nil
}

func (r *HighlightRepository) Clear(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, matchID)

	return nil
}
