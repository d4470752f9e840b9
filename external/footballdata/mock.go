package footballdata

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-highlights/internal/domain/match"
)

type mockFixture struct {
	home            match.Team
	away            match.Team
	competitionID   int64
	competitionName string
}

// Each league keeps its own pairing pool; every generated match first picks a
// league, then a pairing within it.
var mockLeaguePools = [][]mockFixture{
	{
		{home: mockTeam(1, "Arsenal", "ARS"), away: mockTeam(2, "Chelsea", "CHE"), competitionID: 39, competitionName: "Premier League"},
		{home: mockTeam(3, "Manchester United", "MUN"), away: mockTeam(4, "Liverpool", "LIV"), competitionID: 39, competitionName: "Premier League"},
		{home: mockTeam(5, "Tottenham Hotspur", "TOT"), away: mockTeam(6, "Manchester City", "MCI"), competitionID: 39, competitionName: "Premier League"},
		{home: mockTeam(7, "Everton", "EVE"), away: mockTeam(8, "Newcastle United", "NEW"), competitionID: 39, competitionName: "Premier League"},
	},
	{
		{home: mockTeam(9, "Real Madrid", "RMA"), away: mockTeam(10, "Barcelona", "BAR"), competitionID: 140, competitionName: "La Liga"},
		{home: mockTeam(11, "Atletico Madrid", "ATM"), away: mockTeam(12, "Sevilla", "SEV"), competitionID: 140, competitionName: "La Liga"},
		{home: mockTeam(13, "Valencia", "VAL"), away: mockTeam(14, "Real Betis", "BET"), competitionID: 140, competitionName: "La Liga"},
	},
}

func mockTeam(id int64, name, shortName string) match.Team {
	return match.Team{
		ID:        strconv.FormatInt(id, 10),
		Name:      name,
		ShortName: shortName,
	}
}

// MockSource generates deterministic fixtures without any network calls. Each
// calendar day seeds its own generator, so the same day always yields the same
// matches across process restarts.
type MockSource struct{}

func NewMockSource() *MockSource {
	return &MockSource{}
}

// FetchWindow generates one to three finished matches for every calendar day
// in the requested range. When the range is absent it falls back to the same
// trailing window the live provider uses.
func (s *MockSource) FetchWindow(_ context.Context, query match.WindowQuery) ([]match.Match, error) {
	now := time.Now().UTC()
	from, err := parseMockDate(query.DateFrom, now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}
	to, err := parseMockDate(query.DateTo, now)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		from, to = to, from
	}

	var out []match.Match
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		out = append(out, s.matchesForDay(day)...)
	}
	return out, nil
}

// FetchByID regenerates the day encoded in the id prefix and picks the match
// back out of it.
func (s *MockSource) FetchByID(_ context.Context, id string) (match.Match, bool, error) {
	numeric, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || numeric < 100 {
		return match.Match{}, false, nil
	}

	dayKey := numeric / 100
	day, err := time.Parse("20060102", strconv.FormatInt(dayKey, 10))
	if err != nil {
		return match.Match{}, false, nil
	}

	for _, m := range s.matchesForDay(day.UTC()) {
		if m.ID == strings.TrimSpace(id) {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (s *MockSource) matchesForDay(day time.Time) []match.Match {
	day = day.UTC()
	dayKey, _ := strconv.ParseInt(day.Format("20060102"), 10, 64)
	rng := rand.New(rand.NewSource(dayKey))

	count := 1 + rng.Intn(3)

	out := make([]match.Match, 0, count)
	for i := 0; i < count; i++ {
		pool := mockLeaguePools[rng.Intn(len(mockLeaguePools))]
		fixture := pool[rng.Intn(len(pool))]
		homeScore := rng.Intn(4)
		awayScore := rng.Intn(4)

		// Afternoon and evening kickoffs keep the UTC calendar date equal to
		// the US-eastern calendar date, so date filtering behaves the same in
		// both zones.
		kickoff := time.Date(day.Year(), day.Month(), day.Day(), 12+i*3, 0, 0, 0, time.UTC)

		out = append(out, match.Match{
			ID:              fmt.Sprintf("%d%02d", dayKey, i),
			CompetitionID:   fixture.competitionID,
			CompetitionName: fixture.competitionName,
			MatchDate:       kickoff,
			Status:          "finished",
			HomeScore:       &homeScore,
			AwayScore:       &awayScore,
			HomeTeam:        fixture.home,
			AwayTeam:        fixture.away,
		})
	}
	return out
}

func parseMockDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return truncateToDay(fallback), nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return truncateToDay(parsed.UTC()), nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
