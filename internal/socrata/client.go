// Package socrata queries the City of Chicago open data portal for daily
// CTA station entries.
package socrata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"tracks.ghoststops.org/internal/logging"
)

// ErrUnexpectedStatus is returned when the portal answers with anything
// other than 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status from data portal")

// Config configures a Client.
type Config struct {
	BaseURL  string
	AppToken string
	// RequestsPerSecond paces outgoing requests; zero or less disables pacing.
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client fetches ridership rows, one station at a time.
type Client struct {
	baseURL    string
	appToken   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(config Config) *Client {
	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    config.BaseURL,
		appToken:   config.AppToken,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Query selects the rows of one station newer than Since.
type Query struct {
	StationID string
	Since     time.Time
	Limit     int
}

// Values encodes q as SoQL query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("$where", fmt.Sprintf("station_id='%s' AND date > '%s'", q.StationID, q.Since.Format("2006-01-02")))
	v.Set("$order", "date DESC")
	v.Set("$limit", strconv.Itoa(q.Limit))
	return v
}

// StationRidership returns the rows matching q, newest first.
func (c *Client) StationRidership(ctx context.Context, q Query) (records []Record, err error) {
	logger := logging.FromContext(ctx)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Values().Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appToken != "" {
		req.Header.Set("X-App-Token", c.appToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching ridership for station %s: %w", q.StationID, err)
	}
	defer logging.HandleDeferredError(&err, resp.Body.Close, logger, "close_ridership_response")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s for station %s", ErrUnexpectedStatus, resp.Status, q.StationID)
	}

	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding ridership for station %s: %w", q.StationID, err)
	}

	logging.LogOperation(logger, "ridership_fetched",
		slog.String("station_id", q.StationID),
		slog.Int("records", len(records)),
		slog.Duration("duration", time.Since(start)))
	return records, nil
}
