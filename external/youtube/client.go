package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-highlights/internal/domain/highlight"
	"github.com/riskibarqy/match-highlights/internal/platform/logging"
	"github.com/riskibarqy/match-highlights/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	// searchResultLimit is how many candidates one search request returns
	// before view-count ranking trims them down.
	searchResultLimit = 10
	// maxReturnedHighlights caps the ranked result set.
	maxReturnedHighlights = 5
	// minViewCount filters out obscure uploads that happened to match the
	// query text.
	minViewCount = 1000
	// statsChunkSize is the provider's id-list limit for the videos endpoint.
	statsChunkSize = 50
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client searches the video platform for match highlight uploads and ranks
// them by view count. The API key is a query parameter on the wire, so every
// error path scrubs it before the text can reach a log line.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
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

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}
}

// Configured reports whether an API key is present. An unconfigured client
// never reaches the network.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BuildQuery composes the search text for a fixture: both team names quoted
// so the engine keeps them as phrases, plus highlight qualifiers.
func BuildQuery(homeTeam, awayTeam string) string {
	return fmt.Sprintf("%q vs %q highlights extended goals", homeTeam, awayTeam)
}

// BuildQuery lets callers echo the exact search text that Search uses.
func (c *Client) BuildQuery(homeTeam, awayTeam string) string {
	return BuildQuery(strings.TrimSpace(homeTeam), strings.TrimSpace(awayTeam))
}

// Search looks up highlight candidates for the fixture, fetches their view
// statistics, and returns at most five results sorted by views descending.
// Results with fewer than a thousand views are dropped.
func (c *Client) Search(ctx context.Context, homeTeam, awayTeam string) ([]highlight.Highlight, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: video search API key is not configured", usecase.ErrMissingCredential)
	}

	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("%w: both team names are required", usecase.ErrInvalidInput)
	}

	candidates, err := c.searchCandidates(ctx, BuildQuery(homeTeam, awayTeam))
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, item := range candidates {
		ids = append(ids, item.ID.VideoID)
	}
	stats, err := c.fetchStats(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]highlight.Highlight, 0, len(candidates))
	for _, item := range candidates {
		stat, ok := stats[item.ID.VideoID]
		if !ok || stat.views < minViewCount {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		results = append(results, highlight.Highlight{
			ID:              item.ID.VideoID,
			Title:           item.Snippet.Title,
			Description:     item.Snippet.Description,
			YouTubeURL:      "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			ThumbnailURL:    item.Snippet.Thumbnails.High.URL,
			ChannelName:     item.Snippet.ChannelTitle,
			ViewCount:       stat.views,
			DurationSeconds: stat.durationSeconds,
			PublishedAt:     publishedAt,
		})
	}

	// Stable keeps the engine's relevance order among equal view counts.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ViewCount > results[j].ViewCount
	})
	if len(results) > maxReturnedHighlights {
		results = results[:maxReturnedHighlights]
	}
	for rank := range results {
		results[rank].RelevanceScore = 1.0 - 0.05*float64(rank)
	}
	return results, nil
}

func (c *Client) searchCandidates(ctx context.Context, query string) ([]searchItem, error) {
	values := url.Values{}
	values.Set("part", "snippet")
	values.Set("q", query)
	values.Set("type", "video")
	values.Set("maxResults", strconv.Itoa(searchResultLimit))
	values.Set("order", "relevance")
	values.Set("videoDuration", "medium")
	values.Set("videoEmbeddable", "true")

	var envelope searchEnvelope
	if err := c.doJSON(ctx, "/search", values, &envelope); err != nil {
		return nil, fmt.Errorf("search videos: %w", err)
	}

	items := make([]searchItem, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		if strings.TrimSpace(item.ID.VideoID) == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

type videoStats struct {
	views           int64
	durationSeconds int
}

func (c *Client) fetchStats(ctx context.Context, ids []string) (map[string]videoStats, error) {
	chunks := chunkIDs(ids, statsChunkSize)

	var mu sync.Mutex
	stats := make(map[string]videoStats, len(ids))

	p := pool.New().WithContext(ctx).WithMaxGoroutines(4)
	for _, chunk := range chunks {
		chunk := chunk
		p.Go(func(ctx context.Context) error {
			values := url.Values{}
			values.Set("part", "statistics,contentDetails")
			values.Set("id", strings.Join(chunk, ","))

			var envelope videosEnvelope
			if err := c.doJSON(ctx, "/videos", values, &envelope); err != nil {
				return fmt.Errorf("fetch video statistics: %w", err)
			}

			mu.Lock()
			for _, item := range envelope.Items {
				views, _ := strconv.ParseInt(item.Statistics.ViewCount, 10, 64)
				stats[item.ID] = videoStats{
					views:           views,
					durationSeconds: parseISO8601Duration(item.ContentDetails.Duration),
				}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *Client) doJSON(ctx context.Context, path string, values url.Values, target any) error {
	values.Set("key", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %s", c.redactKey(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstream := &usecase.UpstreamError{Status: resp.StatusCode, Message: c.redactKey(abbreviateBody(raw))}
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", usecase.ErrRateLimited, upstream)
		}
		return upstream
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) redactKey(value string) string {
	if c.apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = len(ids)
	}
	var chunks [][]string
	for len(ids) > 0 {
		n := size
		if n > len(ids) {
			n = len(ids)
		}
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}
	return chunks
}

// parseISO8601Duration converts durations like PT14M33S to seconds. Anything
// unparseable comes back as zero.
func parseISO8601Duration(raw string) int {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "PT") {
		return 0
	}

	total := 0
	number := 0
	for _, r := range raw[2:] {
		switch {
		case r >= '0' && r <= '9':
			number = number*10 + int(r-'0')
		case r == 'H':
			total += number * 3600
			number = 0
		case r == 'M':
			total += number * 60
			number = 0
		case r == 'S':
			total += number
			number = 0
		default:
			return 0
		}
	}
	return total
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

type searchEnvelope struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID      searchItemID  `json:"id"`
	Snippet searchSnippet `json:"snippet"`
}

type searchItemID struct {
	VideoID string `json:"videoId"`
}

type searchSnippet struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ChannelTitle string           `json:"channelTitle"`
	PublishedAt  string           `json:"publishedAt"`
	Thumbnails   searchThumbnails `json:"thumbnails"`
}

type searchThumbnails struct {
	High searchThumbnail `json:"high"`
}

type searchThumbnail struct {
	URL string `json:"url"`
}

type videosEnvelope struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string              `json:"id"`
	Statistics     videoStatistics     `json:"statistics"`
	ContentDetails videoContentDetails `json:"contentDetails"`
}

type videoStatistics struct {
	ViewCount string `json:"viewCount"`
}

type videoContentDetails struct {
	Duration string `json:"duration"`
}
