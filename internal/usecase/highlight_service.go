package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	ants "github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/match-highlights/internal/domain/highlight"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
)

// VideoSearcher finds highlight videos for a fixture. Configured reports
// whether the searcher can actually reach its provider; an unconfigured
// searcher makes discovery fall back to a placeholder result.
type VideoSearcher interface {
	Search(ctx context.Context, homeTeam, awayTeam string) ([]highlight.Highlight, error)
	BuildQuery(homeTeam, awayTeam string) string
	Configured() bool
}

type TriggerDiscoveryParams struct {
	MatchID  string
	HomeTeam string
	AwayTeam string
}

type DiscoveryStatus struct {
	MatchID       string
	State         highlight.State
	Processing    bool
	HasHighlights bool
	Highlights    []highlight.Highlight
	Count         int
	Error         string
	UpdatedAt     time.Time
}

type VideoSearchResult struct {
	Query string
	Items []highlight.Highlight
}

// HighlightService owns highlight discovery: it runs searches on a bounded
// worker pool, persists outcomes in the ephemeral store, and exposes the
// per-match discovery state.
type HighlightService struct {
	store    highlight.Store
	searcher VideoSearcher
	pool     *ants.Pool
	logger   *logging.Logger
	randInt  func(n int) int
}

func NewHighlightService(store highlight.Store, searcher VideoSearcher, workers int, logger *logging.Logger) (*HighlightService, error) {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create discovery worker pool: %w", err)
	}

	return &HighlightService{
		store:    store,
		searcher: searcher,
		pool:     pool,
		logger:   logger,
		randInt:  rand.Intn,
	}, nil
}

// Close releases the discovery worker pool.
func (s *HighlightService) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Trigger starts discovery for a match and waits for it to finish. Any error
// left by a previous attempt is cleared first, so a retry always starts from
// a clean processing state.
func (s *HighlightService) Trigger(ctx context.Context, params TriggerDiscoveryParams) (DiscoveryStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Trigger")
	defer span.End()

	matchID := strings.TrimSpace(params.MatchID)
	if matchID == "" {
		return DiscoveryStatus{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	if err := s.store.ClearError(ctx, matchID); err != nil {
		return DiscoveryStatus{}, fmt.Errorf("clear previous discovery error: %w", err)
	}

	done := make(chan error, 1)
	if err := s.pool.Submit(func() {
		done <- s.discover(ctx, matchID, params.HomeTeam, params.AwayTeam)
	}); err != nil {
		return DiscoveryStatus{}, fmt.Errorf("submit discovery task: %w", err)
	}

	select {
	case <-ctx.Done():
		return DiscoveryStatus{}, ctx.Err()
	case err := <-done:
		if err != nil {
			s.logger.WarnContext(ctx, "highlight discovery failed", "match_id", matchID, "error", err)
		}
	}

	return s.Status(ctx, matchID)
}

// Status returns the discovery state for a match. A match without stored
// data or a stored error reports processing=true.
func (s *HighlightService) Status(ctx context.Context, matchID string) (DiscoveryStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Status")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return DiscoveryStatus{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	record, _, err := s.store.Get(ctx, matchID)
	if err != nil {
		return DiscoveryStatus{}, fmt.Errorf("get discovery record: %w", err)
	}
	record.MatchID = matchID

	return DiscoveryStatus{
		MatchID:       matchID,
		State:         record.State(),
		Processing:    record.Processing(),
		HasHighlights: record.State() == highlight.StateDone,
		Highlights:    record.Highlights,
		Count:         len(record.Highlights),
		Error:         record.Error,
		UpdatedAt:     record.UpdatedAt,
	}, nil
}

// Highlights returns the stored highlight list for a match. An empty list
// with no error simply means discovery has not completed.
func (s *HighlightService) Highlights(ctx context.Context, matchID string) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Highlights")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	record, _, err := s.store.Get(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get discovery record: %w", err)
	}
	return record.Highlights, nil
}

// Clear removes all discovery state for a match.
func (s *HighlightService) Clear(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Clear")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	if err := s.store.Clear(ctx, matchID); err != nil {
		return fmt.Errorf("clear discovery record: %w", err)
	}
	return nil
}

// Search runs an ad-hoc video search without touching the store.
func (s *HighlightService) Search(ctx context.Context, homeTeam, awayTeam string) (VideoSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Search")
	defer span.End()

	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return VideoSearchResult{}, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if s.searcher == nil || !s.searcher.Configured() {
		return VideoSearchResult{}, fmt.Errorf("%w: video search API key is not configured", ErrMissingCredential)
	}

	items, err := s.searcher.Search(ctx, homeTeam, awayTeam)
	if err != nil {
		return VideoSearchResult{}, fmt.Errorf("search videos: %w", err)
	}

	return VideoSearchResult{
		Query: s.searcher.BuildQuery(homeTeam, awayTeam),
		Items: items,
	}, nil
}

func (s *HighlightService) discover(ctx context.Context, matchID, homeTeam, awayTeam string) error {
	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)

	if s.searcher != nil && s.searcher.Configured() && homeTeam != "" && awayTeam != "" {
		items, err := s.searcher.Search(ctx, homeTeam, awayTeam)
		if err != nil {
			if recordErr := s.store.RecordError(ctx, matchID, err.Error()); recordErr != nil {
				return fmt.Errorf("record discovery error: %w", recordErr)
			}
			return fmt.Errorf("search highlights: %w", err)
		}
		if len(items) > 0 {
			if err := s.store.Put(ctx, matchID, items); err != nil {
				return fmt.Errorf("store highlights: %w", err)
			}
			return nil
		}
	}

	placeholder := s.placeholderHighlight(matchID, homeTeam, awayTeam)
	if err := s.store.Put(ctx, matchID, []highlight.Highlight{placeholder}); err != nil {
		return fmt.Errorf("store placeholder highlight: %w", err)
	}
	return nil
}

// placeholderHighlight stands in when search is unconfigured or found
// nothing, so the frontend always has something to render.
func (s *HighlightService) placeholderHighlight(matchID, homeTeam, awayTeam string) highlight.Highlight {
	title := "Match Highlights"
	if homeTeam != "" && awayTeam != "" {
		title = fmt.Sprintf("%s vs %s | Match Highlights", homeTeam, awayTeam)
	}

	return highlight.Highlight{
		ID:              "placeholder-" + matchID,
		Title:           title,
		Description:     "Extended highlights and all goals.",
		YouTubeURL:      "https://www.youtube.com/results?search_query=" + strings.ReplaceAll(title, " ", "+"),
		ThumbnailURL:    "",
		ChannelName:     "Sports Highlights",
		ViewCount:       int64(100000 + s.randInt(500001)),
		DurationSeconds: 180 + s.randInt(301),
		RelevanceScore:  0.95,
		PublishedAt:     time.Now().UTC(),
		Placeholder:     true,
	}
}
