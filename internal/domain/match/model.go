package match

import "time"

// Sentinels applied when the provider payload omits a name.
const (
	UnknownCompetitionName = "Unknown Competition"
	UnknownTeamName        = "Unknown Team"
)

// StatusAll disables status filtering when passed as a listing filter.
const StatusAll = "all"

type Team struct {
	ID        string
	Name      string
	ShortName string
	LogoURL   string
}

// Match is one fixture or result as served to callers. The ID is
// provider-assigned and doubles as the display/cache key; no two matches
// in a single listing share an ID.
type Match struct {
	ID              string
	CompetitionID   int64
	CompetitionName string
	MatchDate       time.Time
	Status          string
	HomeScore       *int
	AwayScore       *int
	HomeTeam        Team
	AwayTeam        Team
}
