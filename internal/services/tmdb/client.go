package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hvaillant/cinewatch/internal/config"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Client handles communication with the TMDB API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new TMDB API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required")
	}

	return &Client{
		baseURL: cfg.TMDBBaseURL,
		apiKey:  cfg.TMDBAPIKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:  cache.New(cfg.CatalogCacheTTL, 2*cfg.CatalogCacheTTL),
		logger: logger,
	}, nil
}

// get performs a GET request against a TMDB endpoint, decoding the JSON
// response into result. Responses are cached per endpoint+query for the
// configured TTL. Rate-limited (429) and transient upstream failures are
// retried with exponential backoff; other client errors are not.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	cacheKey := endpoint + "?" + params.Encode()

	if cached, found := c.cache.Get(cacheKey); found {
		return json.Unmarshal(cached.([]byte), result)
	}

	params.Set("api_key", c.apiKey)
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	c.logger.WithField("endpoint", endpoint).Debug("Fetching from TMDB")

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("TMDB request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read TMDB response: %w", err)
			}
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("TMDB returned status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("TMDB returned status %d", resp.StatusCode))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return err
	}

	c.cache.SetDefault(cacheKey, body)

	return json.Unmarshal(body, result)
}
