package footballdata

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/match-highlights/internal/domain/match"
)

func TestMockSource_FetchWindow_IsDeterministicPerDay(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	query := windowQuery("2024-03-01", "2024-03-03", "")

	first, err := source.FetchWindow(context.Background(), query)
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}
	second, err := source.FetchWindow(context.Background(), query)
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	if len(first) == 0 {
		t.Fatal("expected generated matches")
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical runs, got %d vs %d matches", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("expected identical ids at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if scoreOf(first[i].HomeScore) != scoreOf(second[i].HomeScore) {
			t.Fatalf("expected identical scores at %d", i)
		}
	}
}

func TestMockSource_FetchWindow_GeneratesOneToThreeFinishedMatchesPerDay(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	matches, err := source.FetchWindow(context.Background(), windowQuery("2024-03-01", "2024-03-07", ""))
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	perDay := map[string]int{}
	for _, m := range matches {
		day := m.MatchDate.Format("2006-01-02")
		perDay[day]++

		if m.Status != "finished" {
			t.Fatalf("expected finished status, got=%s", m.Status)
		}
		if m.HomeScore == nil || m.AwayScore == nil {
			t.Fatal("expected scores on generated match")
		}
		if *m.HomeScore < 0 || *m.HomeScore > 3 || *m.AwayScore < 0 || *m.AwayScore > 3 {
			t.Fatalf("score out of range: %d-%d", *m.HomeScore, *m.AwayScore)
		}
		if m.CompetitionID != 39 && m.CompetitionID != 140 {
			t.Fatalf("unexpected competition id: %d", m.CompetitionID)
		}
		if !strings.HasPrefix(m.ID, strings.ReplaceAll(day, "-", "")) {
			t.Fatalf("expected id prefixed by day, got id=%s day=%s", m.ID, day)
		}
	}

	if len(perDay) != 7 {
		t.Fatalf("expected matches on every day of the range, got %d days", len(perDay))
	}
	for day, count := range perDay {
		if count < 1 || count > 3 {
			t.Fatalf("expected 1-3 matches on %s, got=%d", day, count)
		}
	}
}

func TestMockSource_FetchWindow_UTCDateMatchesEasternDate(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	matches, err := source.FetchWindow(context.Background(), windowQuery("2024-03-01", "2024-03-01", ""))
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	eastern := loadEastern(t)
	for _, m := range matches {
		utcDay := m.MatchDate.UTC().Format("2006-01-02")
		easternDay := m.MatchDate.In(eastern).Format("2006-01-02")
		if utcDay != easternDay {
			t.Fatalf("kickoff %s crosses midnight between UTC and US-eastern", m.MatchDate)
		}
	}
}

func TestMockSource_FetchWindow_MixesBothLeaguesAcrossAMonth(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	matches, err := source.FetchWindow(context.Background(), windowQuery("2024-03-01", "2024-03-31", ""))
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	leagues := map[int64]bool{}
	for _, m := range matches {
		leagues[m.CompetitionID] = true
		if m.CompetitionID == 39 && m.CompetitionName != "Premier League" {
			t.Fatalf("competition 39 mislabeled as %q", m.CompetitionName)
		}
		if m.CompetitionID == 140 && m.CompetitionName != "La Liga" {
			t.Fatalf("competition 140 mislabeled as %q", m.CompetitionName)
		}
	}

	if !leagues[39] || !leagues[140] {
		t.Fatalf("expected both leagues across a month of fixtures, got=%v", leagues)
	}
}

func TestMockSource_FetchByID_RoundTripsGeneratedIDs(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	matches, err := source.FetchWindow(context.Background(), windowQuery("2024-03-05", "2024-03-05", ""))
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	for _, want := range matches {
		got, ok, err := source.FetchByID(context.Background(), want.ID)
		if err != nil {
			t.Fatalf("FetchByID(%s) error: %v", want.ID, err)
		}
		if !ok {
			t.Fatalf("expected id=%s to resolve", want.ID)
		}
		if got.HomeTeam.Name != want.HomeTeam.Name || got.AwayTeam.Name != want.AwayTeam.Name {
			t.Fatalf("expected %s vs %s, got %s vs %s",
				want.HomeTeam.Name, want.AwayTeam.Name, got.HomeTeam.Name, got.AwayTeam.Name)
		}
		if scoreOf(got.HomeScore) != scoreOf(want.HomeScore) {
			t.Fatalf("expected identical scores for id=%s", want.ID)
		}
	}
}

func TestMockSource_FetchByID_UnknownIDsReturnNotFound(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	for _, id := range []string{"", "abc", "42", "2024030599"} {
		_, ok, err := source.FetchByID(context.Background(), id)
		if err != nil {
			t.Fatalf("FetchByID(%q) error: %v", id, err)
		}
		if ok {
			t.Fatalf("expected id=%q to be unknown", id)
		}
	}
}

func TestMockSource_FetchWindow_DefaultsToTrailingWindow(t *testing.T) {
	t.Parallel()

	source := NewMockSource()
	matches, err := source.FetchWindow(context.Background(), match.WindowQuery{})
	if err != nil {
		t.Fatalf("FetchWindow error: %v", err)
	}

	// Eight calendar days inclusive, one to three matches each.
	if len(matches) < 8 || len(matches) > 24 {
		t.Fatalf("expected 8-24 matches for the trailing window, got=%d", len(matches))
	}
}

func scoreOf(value *int) string {
	if value == nil {
		return "nil"
	}
	return strconv.Itoa(*value)
}

func loadEastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	return loc
}
