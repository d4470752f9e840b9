package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/match-highlights/internal/domain/highlight"
)

type searchVideosRequest struct {
	HomeTeam string `validate:"required,max=120"`
	AwayTeam string `validate:"required,max=120"`
	// MatchDate is accepted for caller parity but does not affect ranking.
	MatchDate string `validate:"omitempty,datetime=2006-01-02"`
}

type highlightDTO struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description,omitempty"`
	YouTubeURL      string  `json:"youtube_url"`
	ThumbnailURL    string  `json:"thumbnail_url,omitempty"`
	ChannelName     string  `json:"channel_name"`
	ViewCount       int64   `json:"view_count"`
	DurationSeconds int     `json:"duration_seconds"`
	RelevanceScore  float64 `json:"relevance_score"`
	PublishedAt     string  `json:"published_at,omitempty"`
	Placeholder     bool    `json:"placeholder,omitempty"`
}

func (h *Handler) SearchVideos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchVideos")
	defer span.End()

	query := r.URL.Query()
	req := searchVideosRequest{
		HomeTeam:  strings.TrimSpace(query.Get("home_team")),
		AwayTeam:  strings.TrimSpace(query.Get("away_team")),
		MatchDate: strings.TrimSpace(query.Get("match_date")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err, []highlightDTO{})
		return
	}

	result, err := h.highlightService.Search(ctx, req.HomeTeam, req.AwayTeam)
	if err != nil {
		h.logger.ErrorContext(ctx, "video search failed", "error", err)
		writeError(ctx, w, err, []highlightDTO{})
		return
	}

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success: true,
		Data:    highlightsToDTO(ctx, result.Items),
		Query:   result.Query,
	})
}

func highlightsToDTO(ctx context.Context, items []highlight.Highlight) []highlightDTO {
	ctx, span := startSpan(ctx, "httpapi.highlightsToDTO")
	defer span.End()

	out := make([]highlightDTO, 0, len(items))
	for _, item := range items {
		out = append(out, highlightToDTO(item))
	}
	return out
}

func highlightToDTO(v highlight.Highlight) highlightDTO {
	publishedAt := ""
	if !v.PublishedAt.IsZero() {
		publishedAt = v.PublishedAt.UTC().Format(time.RFC3339)
	}

	return highlightDTO{
		ID:              v.ID,
		Title:           v.Title,
		Description:     v.Description,
		YouTubeURL:      v.YouTubeURL,
		ThumbnailURL:    v.ThumbnailURL,
		ChannelName:     v.ChannelName,
		ViewCount:       v.ViewCount,
		DurationSeconds: v.DurationSeconds,
		RelevanceScore:  v.RelevanceScore,
		PublishedAt:     publishedAt,
		Placeholder:     v.Placeholder,
	}
}
