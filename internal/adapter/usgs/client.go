package usgs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/didyoufeelit/internal/domain"
	"github.com/couchcryptid/didyoufeelit/internal/observability"
	"github.com/google/uuid"
)

// Client fetches earthquake records from the USGS GeoJSON feed.
type Client struct {
	httpClient  *http.Client
	readTimeout time.Duration
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewClient creates a USGS client with the given connect and read timeouts.
func NewClient(connectTimeout, readTimeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  NewHTTPClient(connectTimeout, readTimeout),
		readTimeout: readTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// FetchEarthquakeData queries rawURL and returns the first earthquake in the
// response. It never fails loudly: any error is logged and reported as
// ok=false.
func (c *Client) FetchEarthquakeData(ctx context.Context, rawURL string) (domain.Event, bool) {
	r := c.FetchResult(ctx, rawURL)
	return r.Event, r.OK()
}

// FetchResult is FetchEarthquakeData with the failure reason kept. The
// failure is already logged and counted when it is returned.
func (c *Client) FetchResult(ctx context.Context, rawURL string) domain.Result {
	logger := c.logger.With("fetch_id", uuid.NewString())
	start := time.Now()

	event, err := c.Fetch(ctx, rawURL)

	reason := domain.Reason(err)
	c.metrics.FetchTotal.WithLabelValues(reason).Inc()
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.Error("fetch earthquake data failed", "reason", reason, "error", err)
		return domain.Failed(err)
	}
	logger.Info("fetched earthquake", "title", event.Title, "felt", event.NumOfPeople, "cdi", event.PerceivedStrength)
	return domain.Succeeded(event)
}

// Fetch queries rawURL and parses the first feature of the response. Errors
// wrap one of the domain sentinels.
func (c *Client) Fetch(ctx context.Context, rawURL string) (domain.Event, error) {
	u, err := createURL(rawURL)
	if err != nil {
		return domain.Event{}, err
	}

	body, err := c.makeHTTPRequest(ctx, u)
	if err != nil {
		return domain.Event{}, err
	}
	if body == "" {
		return domain.Event{}, domain.ErrEmptyBody
	}

	return ParseFeature([]byte(body))
}

func createURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", domain.ErrMalformedURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", domain.ErrMalformedURL)
	}
	return u, nil
}

// makeHTTPRequest performs the GET and returns the whole body as text. Only
// a 200 response has its body read.
func (c *Client) makeHTTPRequest(ctx context.Context, u *url.URL) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", domain.ErrStatus, resp.StatusCode)
	}

	body, err := readFromStream(resp.Body, c.readTimeout, cancel)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %w", domain.ErrNetwork, err)
	}
	return body, nil
}

// readFromStream reads r to EOF as UTF-8 text. Invalid sequences become
// U+FFFD.
func readFromStream(r io.Reader, readTimeout time.Duration, cancel context.CancelFunc) (string, error) {
	ir := newIdleReader(r, readTimeout, cancel)
	defer ir.stop()

	data, err := io.ReadAll(ir)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}
