package aeroapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skyward-analytics/flightpulse/internal/observability"
)

const (
	defaultBaseURL  = "https://aeroapi.flightaware.com/aeroapi/"
	defaultTimeout  = 30 * time.Second
	defaultMaxPages = 5

	// timeFormat is the query timestamp layout the AeroAPI expects.
	timeFormat = "2006-01-02T15:04:05Z"

	headerAPIKey = "x-apikey"

	opFetchFlights = "fetch_flights"
)

// Sentinel errors.
var (
	ErrRateLimited      = errors.New("aeroapi rate limited")
	ErrUnexpectedStatus = errors.New("aeroapi unexpected status")
)

// Backoff bounds the retry loop for rate-limited requests.
type Backoff struct {
	// MaxAttempts is the total number of tries before giving up.
	MaxAttempts int
	// Base is the first wait between tries.
	Base time.Duration
	// Max caps the grown wait.
	Max time.Duration
	// Factor multiplies the wait after each try.
	Factor float64
}

// DefaultBackoff returns the production retry policy: 1m, 2m, 4m, 8m
// (capped at 10m) across 5 attempts.
func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 5,
		Base:        time.Minute,
		Max:         10 * time.Minute,
		Factor:      2,
	}
}

// Sleeper blocks for d or until ctx is done. Injectable for tests.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API endpoint (useful for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithMaxPages sets the server-side pagination limit per request.
func WithMaxPages(n int) Option {
	return func(c *Client) { c.maxPages = n }
}

// WithBackoff sets the rate-limit retry policy.
func WithBackoff(b Backoff) Option {
	return func(c *Client) { c.backoff = b }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches API request instruments.
func WithMetrics(m *observability.APIMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithSleeper replaces the backoff sleep (used by tests to avoid real waits).
func WithSleeper(s Sleeper) Option {
	return func(c *Client) { c.sleep = s }
}

// Client fetches scheduled-flight rows from the FlightAware AeroAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxPages   int
	backoff    Backoff
	sleep      Sleeper
	logger     *slog.Logger
	metrics    *observability.APIMetrics
}

// NewClient creates an AeroAPI client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		maxPages:   defaultMaxPages,
		backoff:    DefaultBackoff(),
		sleep:      SleepContext,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchWindow fetches one direction of airport's schedule between start and
// end (inclusive window edges, UTC). Rate-limited requests are retried with
// exponential backoff; exhausting the retry budget returns an error wrapping
// [ErrRateLimited]. The raw response body of the successful request is
// returned alongside the decoded rows for archival.
func (c *Client) FetchWindow(
	ctx context.Context, airport string, direction Direction, start, end time.Time,
) ([]Flight, []byte, error) {
	wait := c.backoff.Base

	for attempt := 1; attempt <= c.backoff.MaxAttempts; attempt++ {
		flights, raw, err := c.fetchOnce(ctx, airport, direction, start, end)
		if err == nil {
			return flights, raw, nil
		}

		if !errors.Is(err, ErrRateLimited) {
			return nil, nil, err
		}

		if attempt == c.backoff.MaxAttempts {
			break
		}

		c.logger.WarnContext(ctx, "rate limited, backing off",
			slog.String("airport", airport),
			slog.String("direction", string(direction)),
			slog.Duration("wait", wait),
			slog.Int("attempt", attempt),
		)

		sleepErr := c.sleep(ctx, wait)
		if sleepErr != nil {
			return nil, nil, fmt.Errorf("backoff interrupted: %w", sleepErr)
		}

		wait = min(time.Duration(float64(wait)*c.backoff.Factor), c.backoff.Max)
	}

	return nil, nil, fmt.Errorf("%w: gave up after %d attempts", ErrRateLimited, c.backoff.MaxAttempts)
}

func (c *Client) fetchOnce(
	ctx context.Context, airport string, direction Direction, start, end time.Time,
) ([]Flight, []byte, error) {
	reqURL, err := c.buildURL(airport, direction, start, end)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set("Accept", "application/json")

	var done func()
	if c.metrics != nil {
		done = c.metrics.TrackInflight(ctx, opFetchFlights)
	}

	began := time.Now()

	resp, err := c.httpClient.Do(req)

	elapsed := time.Since(began)

	if done != nil {
		done()
	}

	if err != nil {
		c.recordRequest(ctx, observability.StatusError, elapsed)

		return nil, nil, fmt.Errorf("execute request: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordRequest(ctx, observability.StatusError, elapsed)

		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		c.recordRequest(ctx, observability.StatusOK, elapsed)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.recordRequest(ctx, observability.StatusRateLimited, elapsed)

		return nil, nil, fmt.Errorf("%w: %s %s", ErrRateLimited, airport, direction)
	default:
		c.recordRequest(ctx, observability.StatusError, elapsed)

		return nil, nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var payload FlightsResponse

	unmarshalErr := json.Unmarshal(body, &payload)
	if unmarshalErr != nil {
		return nil, nil, fmt.Errorf("decode response: %w", unmarshalErr)
	}

	flights := payload.ForDirection(direction)

	if c.metrics != nil {
		c.metrics.AddFlights(ctx, string(direction), int64(len(flights)))
	}

	return flights, body, nil
}

func (c *Client) buildURL(airport string, direction Direction, start, end time.Time) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	endpoint := base.JoinPath("airports", strings.ToUpper(airport), "flights", string(direction))

	query := endpoint.Query()
	query.Set("start", start.UTC().Format(timeFormat))
	query.Set("end", end.UTC().Format(timeFormat))
	query.Set("max_pages", strconv.Itoa(c.maxPages))
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

func (c *Client) recordRequest(ctx context.Context, status string, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}

	c.metrics.RecordRequest(ctx, opFetchFlights, status, elapsed)
}
