package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-highlights/internal/domain/match"
	"github.com/riskibarqy/match-highlights/internal/platform/cache"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
)

const defaultListLimit = 200

type ListMatchesParams struct {
	DateFrom     string
	DateTo       string
	Status       string
	Competitions string
	Limit        *int
	Offset       *int
}

type ListMatchesResult struct {
	Matches []match.Match
	Total   int
	Limit   int
	Offset  int
	HasMore bool
	// Filters echoes the normalized filter values back to the caller.
	Filters ListMatchesFilters
}

type ListMatchesFilters struct {
	DateFrom      string
	DateTo        string
	Status        string
	CompetitionID string
}

type MatchService struct {
	source       match.Source
	store        *cache.Store
	displayTZ    *time.Location
	competitions string
	logger       *logging.Logger
}

func NewMatchService(source match.Source, store *cache.Store, displayTZ *time.Location, competitions string, logger *logging.Logger) *MatchService {
	if displayTZ == nil {
		displayTZ = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		source:       source,
		store:        store,
		displayTZ:    displayTZ,
		competitions: strings.TrimSpace(competitions),
		logger:       logger,
	}
}

// List returns matches filtered by calendar date and status, paginated.
//
// Dates are compared in the configured display timezone: a match kicking off
// late evening US-eastern belongs to that evening's date even though its UTC
// timestamp is already the next day. The status filter intentionally applies
// AFTER pagination, so total and has_more describe the date-filtered set and
// a page can come back smaller than its limit.
func (s *MatchService) List(ctx context.Context, params ListMatchesParams) (ListMatchesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	dateFrom, err := normalizeDateFilter(params.DateFrom, "date_from")
	if err != nil {
		return ListMatchesResult{}, err
	}
	dateTo, err := normalizeDateFilter(params.DateTo, "date_to")
	if err != nil {
		return ListMatchesResult{}, err
	}
	status := strings.ToLower(strings.TrimSpace(params.Status))

	limit := defaultListLimit
	if params.Limit != nil {
		if *params.Limit < 0 {
			return ListMatchesResult{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
		}
		limit = *params.Limit
	}
	offset := 0
	if params.Offset != nil {
		if *params.Offset < 0 {
			return ListMatchesResult{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
		}
		offset = *params.Offset
	}

	competitions := s.competitions
	requestedCompetition := strings.TrimSpace(params.Competitions)
	if requestedCompetition != "" {
		competitions = requestedCompetition
	}

	matches, err := s.loadWindow(ctx, dateFrom, dateTo, competitions)
	if err != nil {
		return ListMatchesResult{}, err
	}

	filtered := s.filterByDate(matches, dateFrom, dateTo)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].MatchDate.After(filtered[j].MatchDate)
	})

	total := len(filtered)
	page := paginate(filtered, offset, limit)
	hasMore := offset+len(page) < total

	if status != "" && status != match.StatusAll {
		page = filterByStatus(page, status)
	}

	return ListMatchesResult{
		Matches: page,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: hasMore,
		Filters: ListMatchesFilters{
			DateFrom:      dateFrom,
			DateTo:        dateTo,
			Status:        status,
			CompetitionID: requestedCompetition,
		},
	}, nil
}

// GetByID returns one match by provider id.
func (s *MatchService) GetByID(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	found, ok, err := s.source.FetchByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return found, nil
}

func (s *MatchService) loadWindow(ctx context.Context, dateFrom, dateTo, competitions string) ([]match.Match, error) {
	query := match.WindowQuery{
		DateFrom:     dateFrom,
		DateTo:       dateTo,
		Competitions: competitions,
	}

	key, err := windowCacheKey(query)
	if err != nil {
		return nil, err
	}

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		matches, fetchErr := s.source.FetchWindow(ctx, query)
		if fetchErr != nil {
			return nil, fmt.Errorf("fetch match window: %w", fetchErr)
		}
		s.logger.DebugContext(ctx, "match window refreshed", "matches", len(matches))
		return matches, nil
	})
	if err != nil {
		return nil, err
	}

	matches, ok := value.([]match.Match)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T", value)
	}
	return matches, nil
}

func (s *MatchService) filterByDate(matches []match.Match, dateFrom, dateTo string) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		day := m.MatchDate.In(s.displayTZ).Format("2006-01-02")
		if dateFrom != "" && day < dateFrom {
			continue
		}
		if dateTo != "" && day > dateTo {
			continue
		}
		out = append(out, m)
	}
	return out
}

func filterByStatus(matches []match.Match, status string) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if strings.EqualFold(m.Status, status) {
			out = append(out, m)
		}
	}
	return out
}

// paginate returns the slice [offset, offset+limit). A zero limit yields an
// empty page; has_more still reports whether anything lies past the offset.
func paginate(matches []match.Match, offset, limit int) []match.Match {
	if offset >= len(matches) {
		return []match.Match{}
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end]
}

func normalizeDateFilter(raw, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", fmt.Errorf("%w: %s must be formatted as YYYY-MM-DD", ErrInvalidInput, field)
	}
	return raw, nil
}

// windowCacheKey builds a deterministic signature for the upstream window
// query. The struct marshal keeps field order stable across calls.
func windowCacheKey(query match.WindowQuery) (string, error) {
	signature := struct {
		DateFrom     string `json:"date_from"`
		DateTo       string `json:"date_to"`
		Competitions string `json:"competitions"`
	}{
		DateFrom:     query.DateFrom,
		DateTo:       query.DateTo,
		Competitions: query.Competitions,
	}

	raw, err := sonic.Marshal(signature)
	if err != nil {
		return "", fmt.Errorf("build cache key: %w", err)
	}
	return "matches:window:" + string(raw), nil
}
