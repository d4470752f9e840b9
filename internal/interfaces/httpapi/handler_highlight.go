package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-highlights/internal/usecase"
)

type triggerDiscoveryRequest struct {
	MatchID  string `json:"matchId" validate:"required,max=40"`
	HomeTeam string `json:"homeTeam" validate:"omitempty,max=120"`
	AwayTeam string `json:"awayTeam" validate:"omitempty,max=120"`
}

// Discovery payloads keep the camelCase keys the frontend already consumes.
type discoveryStatusDTO struct {
	MatchID       string         `json:"matchId"`
	Highlights    []highlightDTO `json:"highlights"`
	IsProcessing  bool           `json:"isProcessing"`
	HasHighlights bool           `json:"hasHighlights"`
	Error         string         `json:"error,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
}

func (h *Handler) GetDiscoveryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDiscoveryStatus")
	defer span.End()

	matchID := strings.TrimSpace(r.URL.Query().Get("matchId"))
	if matchID == "" {
		writeError(ctx, w, fmt.Errorf("%w: matchId is required", usecase.ErrInvalidInput), nil)
		return
	}

	status, err := h.highlightService.Status(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, discoveryStatusToDTO(ctx, status))
}

func (h *Handler) TriggerDiscovery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TriggerDiscovery")
	defer span.End()

	var req triggerDiscoveryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err), nil)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err, nil)
		return
	}

	status, err := h.highlightService.Trigger(ctx, usecase.TriggerDiscoveryParams{
		MatchID:  req.MatchID,
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "trigger discovery failed", "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, discoveryStatusToDTO(ctx, status))
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListHighlights")
	defer span.End()

	items, err := h.highlightService.Highlights(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(ctx, w, err, []highlightDTO{})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, highlightsToDTO(ctx, items))
}

func (h *Handler) ClearHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearHighlights")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.highlightService.Clear(ctx, matchID); err != nil {
		writeError(ctx, w, err, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"match_id": strings.TrimSpace(matchID), "state": "cleared"})
}

func discoveryStatusToDTO(ctx context.Context, v usecase.DiscoveryStatus) discoveryStatusDTO {
	updatedAt := ""
	if !v.UpdatedAt.IsZero() {
		updatedAt = v.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return discoveryStatusDTO{
		MatchID:       v.MatchID,
		Highlights:    highlightsToDTO(ctx, v.Highlights),
		IsProcessing:  v.Processing,
		HasHighlights: v.HasHighlights,
		Error:         v.Error,
		UpdatedAt:     updatedAt,
	}
}
