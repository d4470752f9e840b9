package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-highlights/internal/domain/match"
	"github.com/riskibarqy/match-highlights/internal/usecase"
)

type listMatchesRequest struct {
	DateFrom      string `validate:"omitempty,datetime=2006-01-02"`
	DateTo        string `validate:"omitempty,datetime=2006-01-02"`
	CompetitionID string `validate:"omitempty,max=40"`
	Status        string `validate:"omitempty,max=40"`
	Limit         *int   `validate:"omitempty,gte=0"`
	Offset        *int   `validate:"omitempty,gte=0"`
}

type matchDTO struct {
	ID              string  `json:"id"`
	CompetitionID   int64   `json:"competition_id"`
	CompetitionName string  `json:"competition_name"`
	MatchDate       string  `json:"match_date"`
	Status          string  `json:"status"`
	HomeScore       *int    `json:"home_score"`
	AwayScore       *int    `json:"away_score"`
	HomeTeam        teamDTO `json:"home_team"`
	AwayTeam        teamDTO `json:"away_team"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	LogoURL   string `json:"logo_url,omitempty"`
}

type matchFiltersDTO struct {
	DateFrom      string `json:"date_from,omitempty"`
	DateTo        string `json:"date_to,omitempty"`
	CompetitionID string `json:"competition_id,omitempty"`
	Status        string `json:"status,omitempty"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	req, err := parseListMatchesRequest(r)
	if err != nil {
		writeError(ctx, w, err, []matchDTO{})
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err, []matchDTO{})
		return
	}

	result, err := h.matchService.List(ctx, usecase.ListMatchesParams{
		DateFrom:     req.DateFrom,
		DateTo:       req.DateTo,
		Competitions: req.CompetitionID,
		Status:       req.Status,
		Limit:        req.Limit,
		Offset:       req.Offset,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err, []matchDTO{})
		return
	}

	items := make([]matchDTO, 0, len(result.Matches))
	for _, m := range result.Matches {
		items = append(items, matchToDTO(ctx, m))
	}

	writeListSuccess(ctx, w, items, paginationMeta{
		Total:   result.Total,
		Limit:   result.Limit,
		Offset:  result.Offset,
		HasMore: result.HasMore,
	}, matchFiltersDTO{
		DateFrom:      result.Filters.DateFrom,
		DateTo:        result.Filters.DateTo,
		CompetitionID: result.Filters.CompetitionID,
		Status:        result.Filters.Status,
	})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	found, err := h.matchService.GetByID(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, found))
}

func parseListMatchesRequest(r *http.Request) (listMatchesRequest, error) {
	query := r.URL.Query()
	req := listMatchesRequest{
		DateFrom:      strings.TrimSpace(query.Get("date_from")),
		DateTo:        strings.TrimSpace(query.Get("date_to")),
		CompetitionID: strings.TrimSpace(query.Get("competition_id")),
		Status:        strings.TrimSpace(query.Get("status")),
	}

	limit, err := parseOptionalInt(query.Get("limit"), "limit")
	if err != nil {
		return listMatchesRequest{}, err
	}
	req.Limit = limit

	offset, err := parseOptionalInt(query.Get("offset"), "offset")
	if err != nil {
		return listMatchesRequest{}, err
	}
	req.Offset = offset

	return req, nil
}

func parseOptionalInt(raw, field string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, field)
	}
	return &value, nil
}

func matchToDTO(ctx context.Context, v match.Match) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	return matchDTO{
		ID:              v.ID,
		CompetitionID:   v.CompetitionID,
		CompetitionName: v.CompetitionName,
		MatchDate:       v.MatchDate.UTC().Format(time.RFC3339),
		Status:          v.Status,
		HomeScore:       v.HomeScore,
		AwayScore:       v.AwayScore,
		HomeTeam:        teamToDTO(v.HomeTeam),
		AwayTeam:        teamToDTO(v.AwayTeam),
	}
}

func teamToDTO(v match.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		Name:      v.Name,
		ShortName: v.ShortName,
		LogoURL:   v.LogoURL,
	}
}
