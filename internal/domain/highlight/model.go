package highlight

import "time"

// Highlight is one discovered highlight video for a match.
type Highlight struct {
	ID              string
	Title           string
	Description     string
	YouTubeURL      string
	ThumbnailURL    string
	ChannelName     string
	ViewCount       int64
	DurationSeconds int
	RelevanceScore  float64
	PublishedAt     time.Time
	// Placeholder marks synthetic entries that stand in for a real
	// discovered video.
	Placeholder bool
}

type State string

const (
	// StateEmpty means discovery has not produced data or an error yet;
	// callers treat it as "still processing".
	StateEmpty State = "empty"
	// StateDone means highlights were recorded.
	StateDone State = "done"
	// StateFailed means the last discovery attempt recorded an error.
	StateFailed State = "failed"
)

// Record is the per-match discovery state. The store guarantees highlights
// and error are mutually exclusive, so the three states below cover every
// reachable record.
type Record struct {
	MatchID    string
	Highlights []Highlight
	Error      string
	UpdatedAt  time.Time
}

func (r Record) State() State {
	if r.Error != "" {
		return StateFailed
	}
	if len(r.Highlights) > 0 {
		return StateDone
	}
	return StateEmpty
}

// Processing reports whether discovery has neither data nor an error yet.
// This derived flag is the only progress signal exposed to callers.
func (r Record) Processing() bool {
	return r.State() == StateEmpty
}
