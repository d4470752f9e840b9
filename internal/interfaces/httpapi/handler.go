package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
	"github.com/riskibarqy/match-highlights/internal/usecase"
)

type Handler struct {
	matchService     *usecase.MatchService
	highlightService *usecase.HighlightService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	highlightService *usecase.HighlightService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:     matchService,
		highlightService: highlightService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
