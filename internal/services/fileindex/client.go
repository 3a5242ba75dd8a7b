package fileindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hvaillant/cinewatch/internal/config"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// ErrUnavailable signals that the file-index server could not be reached or
// answered with a non-2xx status. Callers degrade to "no download available"
// instead of surfacing a hard error.
var ErrUnavailable = errors.New("download server unavailable")

const fileListCacheKey = "file_list"

// File is one record advertised by the bot-operated file-index server.
// Fields missing from the upstream payload decode to their zero values;
// a partially filled record is still usable.
type File struct {
	ID           int64  `json:"id"`
	FileID       string `json:"file_id"`
	FileName     string `json:"file_name"`
	FileSize     int64  `json:"file_size"`
	Duration     int    `json:"duration"`
	TelegramLink string `json:"telegram_link"`
	MimeType     string `json:"mime_type"`
}

// listResponse is the envelope the upstream server wraps its file list in.
type listResponse struct {
	Data []File `json:"data"`
}

// Client fetches the advertised file list from the external file-index server
type Client struct {
	baseURL    string
	endpoint   string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new file-index client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.DownloadServerURL == "" {
		return nil, fmt.Errorf("download server URL is required")
	}
	if _, err := url.Parse(cfg.DownloadServerURL); err != nil {
		return nil, fmt.Errorf("invalid download server URL: %w", err)
	}

	return &Client{
		baseURL:  cfg.DownloadServerURL,
		endpoint: cfg.DownloadEndpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache.New(cfg.FileIndexCacheTTL, 2*cfg.FileIndexCacheTTL),
		logger: logger,
	}, nil
}

// ListFiles returns the current file list, served from cache when a fresh
// copy is available. The upstream list is small and changes rarely, so a
// short TTL keeps repeated download checks from hammering the bot.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	if cached, found := c.cache.Get(fileListCacheKey); found {
		return cached.([]File), nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the file list from upstream, bypassing the cache, and
// stores the result for subsequent ListFiles calls.
func (c *Client) Refresh(ctx context.Context) ([]File, error) {
	files, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(fileListCacheKey, files)
	return files, nil
}

func (c *Client) fetch(ctx context.Context) ([]File, error) {
	fullURL := c.baseURL + c.endpoint

	c.logger.WithField("url", fullURL).Debug("Fetching file list from download server")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "cinewatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("Download server returned non-OK status")
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.logger.WithField("count", len(list.Data)).Debug("File list fetched")

	return list.Data, nil
}
