package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/match-highlights/internal/domain/highlight"
	"github.com/riskibarqy/match-highlights/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
)

type fakeSearcher struct {
	configured bool
	items      []highlight.Highlight
	err        error
	calls      int
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string) ([]highlight.Highlight, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeSearcher) BuildQuery(homeTeam, awayTeam string) string {
	return homeTeam + " vs " + awayTeam
}

func (f *fakeSearcher) Configured() bool {
	return f.configured
}

func newHighlightService(t *testing.T, searcher VideoSearcher) *HighlightService {
	t.Helper()
	svc, err := NewHighlightService(memory.NewHighlightRepository(), searcher, 2, logging.NewNop())
	if err != nil {
		t.Fatalf("NewHighlightService error: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func TestHighlightService_Trigger_StoresSearchResults(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{
		configured: true,
		items:      []highlight.Highlight{{ID: "v1", ViewCount: 5000}},
	}
	svc := newHighlightService(t, searcher)

	status, err := svc.Trigger(context.Background(), TriggerDiscoveryParams{
		MatchID:  "m1",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	})
	if err != nil {
		t.Fatalf("Trigger error: %v", err)
	}

	if status.State != highlight.StateDone {
		t.Fatalf("expected done state, got=%s", status.State)
	}
	if status.Processing {
		t.Fatal("expected processing=false after completed discovery")
	}
	if !status.HasHighlights || status.Count != 1 {
		t.Fatalf("expected one stored highlight, got count=%d", status.Count)
	}

	items, err := svc.Highlights(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Highlights error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "v1" {
		t.Fatalf("unexpected stored highlights: %+v", items)
	}
	if items[0].Placeholder {
		t.Fatal("real search results must not be marked placeholder")
	}
}

func TestHighlightService_Trigger_SearchFailureRecordsError(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{configured: true, err: errors.New("quota exceeded")}
	svc := newHighlightService(t, searcher)

	status, err := svc.Trigger(context.Background(), TriggerDiscoveryParams{
		MatchID:  "m1",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	})
	if err != nil {
		t.Fatalf("Trigger error: %v", err)
	}

	if status.State != highlight.StateFailed {
		t.Fatalf("expected failed state, got=%s", status.State)
	}
	if !strings.Contains(status.Error, "quota exceeded") {
		t.Fatalf("expected recorded error message, got=%q", status.Error)
	}
	if status.Processing {
		t.Fatal("a failed match must not read as processing")
	}
}

func TestHighlightService_Trigger_UnconfiguredSearcherStoresPlaceholder(t *testing.T) {
	t.Parallel()

	svc := newHighlightService(t, &fakeSearcher{configured: false})

	status, err := svc.Trigger(context.Background(), TriggerDiscoveryParams{
		MatchID:  "m1",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	})
	if err != nil {
		t.Fatalf("Trigger error: %v", err)
	}

	if status.State != highlight.StateDone {
		t.Fatalf("expected done state, got=%s", status.State)
	}

	items, err := svc.Highlights(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Highlights error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one placeholder, got=%d", len(items))
	}
	got := items[0]
	if !got.Placeholder {
		t.Fatal("expected placeholder flag")
	}
	if got.ChannelName != "Sports Highlights" {
		t.Fatalf("unexpected placeholder channel: %q", got.ChannelName)
	}
	if got.ViewCount < 100000 || got.ViewCount > 600000 {
		t.Fatalf("placeholder views out of range: %d", got.ViewCount)
	}
	if got.DurationSeconds < 180 || got.DurationSeconds > 480 {
		t.Fatalf("placeholder duration out of range: %d", got.DurationSeconds)
	}
	if got.RelevanceScore != 0.95 {
		t.Fatalf("expected placeholder relevance 0.95, got=%v", got.RelevanceScore)
	}
}

func TestHighlightService_Trigger_EmptySearchFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{configured: true, items: nil}
	svc := newHighlightService(t, searcher)

	if _, err := svc.Trigger(context.Background(), TriggerDiscoveryParams{
		MatchID:  "m1",
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
	}); err != nil {
		t.Fatalf("Trigger error: %v", err)
	}
	if searcher.calls != 1 {
		t.Fatalf("expected one search call, got=%d", searcher.calls)
	}

	items, _ := svc.Highlights(context.Background(), "m1")
	if len(items) != 1 || !items[0].Placeholder {
		t.Fatalf("expected placeholder fallback, got=%+v", items)
	}
}

func TestHighlightService_Trigger_RetryClearsPreviousError(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{configured: true, err: errors.New("transient outage")}
	svc := newHighlightService(t, searcher)
	ctx := context.Background()

	if _, err := svc.Trigger(ctx, TriggerDiscoveryParams{MatchID: "m1", HomeTeam: "A", AwayTeam: "B"}); err != nil {
		t.Fatalf("Trigger error: %v", err)
	}
	status, _ := svc.Status(ctx, "m1")
	if status.State != highlight.StateFailed {
		t.Fatalf("expected failed state first, got=%s", status.State)
	}

	searcher.err = nil
	searcher.items = []highlight.Highlight{{ID: "v1"}}
	status, err := svc.Trigger(ctx, TriggerDiscoveryParams{MatchID: "m1", HomeTeam: "A", AwayTeam: "B"})
	if err != nil {
		t.Fatalf("Trigger retry error: %v", err)
	}
	if status.State != highlight.StateDone || status.Error != "" {
		t.Fatalf("expected clean done state after retry, got state=%s error=%q", status.State, status.Error)
	}
}

func TestHighlightService_Status_UnknownMatchIsProcessing(t *testing.T) {
	t.Parallel()

	svc := newHighlightService(t, &fakeSearcher{})

	status, err := svc.Status(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status.State != highlight.StateEmpty {
		t.Fatalf("expected empty state, got=%s", status.State)
	}
	if !status.Processing {
		t.Fatal("expected processing=true for unknown match")
	}
	if status.HasHighlights || status.Count != 0 || status.Error != "" {
		t.Fatalf("unexpected status fields: %+v", status)
	}
}

func TestHighlightService_Clear(t *testing.T) {
	t.Parallel()

	svc := newHighlightService(t, &fakeSearcher{configured: true, items: []highlight.Highlight{{ID: "v1"}}})
	ctx := context.Background()

	if _, err := svc.Trigger(ctx, TriggerDiscoveryParams{MatchID: "m1", HomeTeam: "A", AwayTeam: "B"}); err != nil {
		t.Fatalf("Trigger error: %v", err)
	}
	if err := svc.Clear(ctx, "m1"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}

	status, err := svc.Status(ctx, "m1")
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status.State != highlight.StateEmpty {
		t.Fatalf("expected empty state after clear, got=%s", status.State)
	}
}

func TestHighlightService_Search(t *testing.T) {
	t.Parallel()

	searcher := &fakeSearcher{configured: true, items: []highlight.Highlight{{ID: "v1"}}}
	svc := newHighlightService(t, searcher)

	result, err := svc.Search(context.Background(), "Arsenal", "Chelsea")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if result.Query != "Arsenal vs Chelsea" {
		t.Fatalf("expected echoed query, got=%q", result.Query)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one item, got=%d", len(result.Items))
	}

	if _, err := svc.Search(context.Background(), "", "Chelsea"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}

	unconfigured := newHighlightService(t, &fakeSearcher{configured: false})
	if _, err := unconfigured.Search(context.Background(), "Arsenal", "Chelsea"); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got=%v", err)
	}
}

func TestHighlightService_ValidatesMatchID(t *testing.T) {
	t.Parallel()

	svc := newHighlightService(t, &fakeSearcher{})
	ctx := context.Background()

	if _, err := svc.Trigger(ctx, TriggerDiscoveryParams{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Trigger: expected ErrInvalidInput, got=%v", err)
	}
	if _, err := svc.Status(ctx, " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Status: expected ErrInvalidInput, got=%v", err)
	}
	if _, err := svc.Highlights(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Highlights: expected ErrInvalidInput, got=%v", err)
	}
	if err := svc.Clear(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Clear: expected ErrInvalidInput, got=%v", err)
	}
}
