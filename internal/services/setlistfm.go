// setlist.fm API implementation of [SetlistService]
//
// Response types based on https://api.setlist.fm/docs/1.0/index.html
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/finallyfriday/encore/internal/models"
	"github.com/finallyfriday/encore/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultSetlistBaseURL        = "https://api.setlist.fm/rest"
	defaultSetlistSearchEndpoint = "/1.0/search/setlists"
	defaultSetlistRateLimit      = 2.0

	// setlistDateLayout is the DD-MM-YYYY format the search endpoint expects.
	setlistDateLayout = "02-01-2006"
)

// SetlistFMService implements [SetlistService] against the setlist.fm REST API.
//
// Requests carry the API key in an x-api-key header and are paced by a
// [rate.Limiter]. HTTP failures whose status text is in the configured
// retriable set are retried up to the configured maximum.
type SetlistFMService struct {
	apiKey     string
	baseURL    string
	endpoint   string
	numRetries int
	retriable  map[string]struct{}
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// SetlistFMOpts contains configuration options for creating a SetlistFMService.
type SetlistFMOpts struct {
	APIKey           string       // Required
	BaseURL          string       // Defaults to the public setlist.fm API
	SearchEndpoint   string       // Defaults to /1.0/search/setlists
	NumRetries       int          // Maximum retries for retriable failures
	RetriableReasons []string     // HTTP status texts considered transient
	RateLimit        float64      // Requests per second (default 2)
	HTTPClient       *http.Client // Defaults to http.DefaultClient
	Logger           *log.Logger  // Defaults to a stderr logger
}

// NewSetlistFMService creates a new setlist.fm service with the given options.
func NewSetlistFMService(opts SetlistFMOpts) (*SetlistFMService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%w: setlist.fm api_key is not set", shared.ErrMissingCredentials)
	}

	if opts.BaseURL == "" {
		opts.BaseURL = defaultSetlistBaseURL
	}
	if opts.SearchEndpoint == "" {
		opts.SearchEndpoint = defaultSetlistSearchEndpoint
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultSetlistRateLimit
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	retriable := make(map[string]struct{}, len(opts.RetriableReasons))
	for _, reason := range opts.RetriableReasons {
		retriable[reason] = struct{}{}
	}

	return &SetlistFMService{
		apiKey:     opts.APIKey,
		baseURL:    opts.BaseURL,
		endpoint:   opts.SearchEndpoint,
		numRetries: opts.NumRetries,
		retriable:  retriable,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:     opts.Logger,
	}, nil
}

// Name returns the service name.
func (s *SetlistFMService) Name() string {
	return "setlist.fm"
}

// FindSetlist queries the search endpoint for the given artist and date.
//
// A 200 response with at least one setlist whose first entry has a non-empty
// set list succeeds. A 200 response with nothing usable fails with
// [shared.ErrSetlistNotFound]. Other statuses are retried while their status
// text is in the retriable set, up to numRetries, then fail with
// [shared.ErrRetriesExhausted].
func (s *SetlistFMService) FindSetlist(ctx context.Context, artist string, date time.Time) (*models.SetlistResponse, json.RawMessage, error) {
	formatted := date.Format(setlistDateLayout)

	params := url.Values{}
	params.Set("artistName", artist)
	params.Set("date", formatted)
	searchURL := s.baseURL + s.endpoint + "?" + params.Encode()

	retries := 0
	for retries <= s.numRetries {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		body, status, err := s.doSearch(ctx, searchURL)
		if err != nil {
			return nil, nil, err
		}

		if status == http.StatusOK {
			var response models.SetlistResponse
			if err := json.Unmarshal(body, &response); err != nil {
				return nil, nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
			}

			if !response.HasSongs() {
				return nil, nil, fmt.Errorf("%w: no setlist for %q on %s", shared.ErrSetlistNotFound, artist, formatted)
			}

			return &response, json.RawMessage(body), nil
		}

		reason := http.StatusText(status)
		if _, ok := s.retriable[reason]; !ok {
			return nil, nil, fmt.Errorf("%w: %q for %q on %s", shared.ErrAPIRequest, reason, artist, formatted)
		}

		retries++
		s.logger.Info("retriable error from setlist.fm", "artist", artist, "date", formatted, "reason", reason, "retry", retries)
	}

	return nil, nil, fmt.Errorf("%w: %q on %s", shared.ErrRetriesExhausted, artist, formatted)
}

// doSearch performs a single search request and returns the body and status.
func (s *SetlistFMService) doSearch(ctx context.Context, searchURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	return body, resp.StatusCode, nil
}
