package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/riskibarqy/match-highlights/external/footballdata"
	"github.com/riskibarqy/match-highlights/external/youtube"
	"github.com/riskibarqy/match-highlights/internal/config"
	"github.com/riskibarqy/match-highlights/internal/domain/match"
	"github.com/riskibarqy/match-highlights/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-highlights/internal/interfaces/httpapi"
	"github.com/riskibarqy/match-highlights/internal/platform/cache"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
	"github.com/riskibarqy/match-highlights/internal/platform/ratelimit"
	"github.com/riskibarqy/match-highlights/internal/platform/resilience"
	"github.com/riskibarqy/match-highlights/internal/usecase"
)

// NewHTTPServer wires the full service graph and returns the server plus a
// cleanup function that releases the discovery worker pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, accessLogger *slog.Logger) (*http.Server, func(), error) {
	displayTZ, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		return nil, nil, fmt.Errorf("load display timezone %q: %w", cfg.DisplayTimezone, err)
	}

	store := cache.NewStore(cfg.CacheTTL)
	gate := ratelimit.NewGate(cfg.RequestMinSpacing, cfg.RequestSettleDelay)

	var source match.Source
	if cfg.FootballDataEnabled {
		source = footballdata.NewClient(footballdata.ClientConfig{
			BaseURL:    cfg.FootballDataBaseURL,
			Token:      cfg.FootballDataToken,
			Timeout:    cfg.FootballDataTimeout,
			MaxRetries: cfg.FootballDataMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.FootballDataCircuitEnabled,
				FailureThreshold: cfg.FootballDataCircuitFailureCount,
				OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
			},
			Gate: gate,
		})
	} else {
		source = footballdata.NewMockSource()
	}

	matchSvc := usecase.NewMatchService(source, store, displayTZ, cfg.FootballDataCompetitions, logger)

	searcher := youtube.NewClient(youtube.ClientConfig{
		BaseURL: cfg.YouTubeBaseURL,
		APIKey:  cfg.YouTubeAPIKey,
		Timeout: cfg.YouTubeTimeout,
		Logger:  logger,
	})

	highlightRepo := memory.NewHighlightRepository()
	highlightSvc, err := usecase.NewHighlightService(highlightRepo, searcher, cfg.DiscoveryWorkers, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build highlight service: %w", err)
	}

	handler := httpapi.NewHandler(matchSvc, highlightSvc, logger)
	router := httpapi.NewRouter(handler, accessLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		highlightSvc.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, highlightSvc.Close, nil
}
