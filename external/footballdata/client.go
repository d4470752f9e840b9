package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/match-highlights/internal/domain/match"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
	"github.com/riskibarqy/match-highlights/internal/platform/ratelimit"
	"github.com/riskibarqy/match-highlights/internal/platform/resilience"
	"github.com/riskibarqy/match-highlights/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://api.football-data.org/v4"
	// DefaultCompetitions is the competition filter applied when the caller
	// does not name one: top five leagues plus the Champions League.
	DefaultCompetitions = "PL,PD,CL,BL1,SA,FL1"
	// The provider's own date filtering is unreliable for this use case, so
	// every listing call requests the trailing week and filters locally.
	windowDays = 7
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Gate           *ratelimit.Gate
}

// Client talks to the live fixtures provider. The credential travels in the
// X-Auth-Token header; it never appears in URLs, and error text is scrubbed
// before logging.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	gate           *ratelimit.Gate
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		gate:           cfg.Gate,
	}
}

// FetchWindow fetches the trailing seven-day window of matches for the given
// competitions. The caller's requested date range is applied locally by the
// listing service, not forwarded upstream.
func (c *Client) FetchWindow(ctx context.Context, query match.WindowQuery) ([]match.Match, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: fixtures provider token is not configured", usecase.ErrMissingCredential)
	}

	competitions := strings.TrimSpace(query.Competitions)
	if competitions == "" {
		competitions = DefaultCompetitions
	}

	now := time.Now().UTC()
	params := map[string]string{
		"dateFrom":     now.AddDate(0, 0, -windowDays).Format("2006-01-02"),
		"dateTo":       now.Format("2006-01-02"),
		"competitions": competitions,
	}

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, "/matches", params, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matches window: %w", err)
	}

	out := make([]match.Match, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		out = append(out, transformMatch(item))
	}
	return out, nil
}

// FetchByID fetches a single match. The bool result is false when the
// provider does not know the id.
func (c *Client) FetchByID(ctx context.Context, id string) (match.Match, bool, error) {
	if c.token == "" {
		return match.Match{}, false, fmt.Errorf("%w: fixtures provider token is not configured", usecase.ErrMissingCredential)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return match.Match{}, false, fmt.Errorf("match id is required")
	}

	var item providerMatch
	if err := c.doJSON(ctx, "/matches/"+url.PathEscape(id), nil, &item); err != nil {
		var upstream *usecase.UpstreamError
		if stderrors.As(err, &upstream) && upstream.Status == http.StatusNotFound {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("fetch match id=%s: %w", id, err)
	}

	return transformMatch(item), true, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixtures provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		if waitErr := c.gate.Wait(ctx); waitErr != nil {
			return nil, waitErr
		}
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("X-Auth-Token", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				lastErr = upstreamStatusError(resp.StatusCode, raw)
				if !isRetryableStatus(resp.StatusCode) {
					return nil, lastErr
				}
				lastErr = fmt.Errorf("%w: %w", errFootballDataTransient, lastErr)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func upstreamStatusError(status int, body []byte) error {
	upstream := &usecase.UpstreamError{Status: status, Message: abbreviateBody(body)}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", usecase.ErrRateLimited, upstream)
	}
	return upstream
}

func transformMatch(item providerMatch) match.Match {
	competitionName := strings.TrimSpace(item.Competition.Name)
	if competitionName == "" {
		competitionName = match.UnknownCompetitionName
	}

	out := match.Match{
		ID:              strconv.FormatInt(item.ID, 10),
		CompetitionID:   item.Competition.ID,
		CompetitionName: competitionName,
		Status:          normalizeStatus(item.Status),
		HomeTeam:        transformTeam(item.HomeTeam),
		AwayTeam:        transformTeam(item.AwayTeam),
		HomeScore:       item.Score.FullTime.Home,
		AwayScore:       item.Score.FullTime.Away,
	}
	if parsed := parseProviderDateTime(item.UTCDate); parsed != nil {
		out.MatchDate = *parsed
	}
	return out
}

func transformTeam(item providerTeam) match.Team {
	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = match.UnknownTeamName
	}
	shortName := firstNonEmpty(strings.TrimSpace(item.ShortName), strings.TrimSpace(item.TLA), name)

	return match.Team{
		ID:        strconv.FormatInt(item.ID, 10),
		Name:      name,
		ShortName: shortName,
		LogoURL:   strings.TrimSpace(item.Crest),
	}
}

func normalizeStatus(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "scheduled"
	}
	return value
}

func parseProviderDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	return value
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

type matchesEnvelope struct {
	Matches []providerMatch `json:"matches"`
}

type providerMatch struct {
	ID          int64               `json:"id"`
	UTCDate     string              `json:"utcDate"`
	Status      string              `json:"status"`
	Competition providerCompetition `json:"competition"`
	HomeTeam    providerTeam        `json:"homeTeam"`
	AwayTeam    providerTeam        `json:"awayTeam"`
	Score       providerScore       `json:"score"`
}

type providerCompetition struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type providerTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type providerScore struct {
	FullTime providerScorePair `json:"fullTime"`
}

type providerScorePair struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}
