package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultTimeout bounds a single request including the body read.
	DefaultTimeout = 10 * time.Second

	// DefaultRequestsPer10s stays under TMDB's documented ~50 requests
	// per 10 seconds.
	DefaultRequestsPer10s = 40

	maxBodyBytes = 4 << 20
)

// TimeWindow selects the trending period.
type TimeWindow string

const (
	WindowDay  TimeWindow = "day"
	WindowWeek TimeWindow = "week"
)

// Client issues read-only TMDB requests. Safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests use httptest).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithRateLimit allows n requests per 10 seconds. n <= 0 disables limiting.
func WithRateLimit(n int) Option {
	return func(c *Client) {
		if n <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := n / 4
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(10*time.Second/time.Duration(n)), burst)
	}
}

// NewClient returns a client authenticating with apiKey. An empty key is
// allowed; TMDB answers 401 and every call fails with a NetworkError.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	WithRateLimit(DefaultRequestsPer10s)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// listResponse is MoviePage with results as a pointer so a missing field
// can be told apart from an empty list.
type listResponse struct {
	Page         int      `json:"page"`
	Results      *[]Movie `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// Trending returns the trending movies for window. Anything other than
// WindowDay is treated as WindowWeek.
func (c *Client) Trending(ctx context.Context, window TimeWindow) (*MoviePage, error) {
	if window != WindowDay {
		window = WindowWeek
	}
	return c.list(ctx, "trending", "/trending/movie/"+string(window), nil)
}

// Popular returns a page of popular movies. page < 1 means 1.
func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "popular", "/movie/popular", pageParams(page))
}

// TopRated returns a page of top-rated movies.
func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "top_rated", "/movie/top_rated", pageParams(page))
}

// NowPlaying returns a page of movies currently in theaters.
func (c *Client) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return c.list(ctx, "now_playing", "/movie/now_playing", pageParams(page))
}

// Search returns movies matching query. The caller is expected to skip
// empty queries; TMDB answers them with an empty page.
func (c *Client) Search(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := pageParams(page)
	params.Set("query", query)
	return c.list(ctx, "search", "/search/movie", params)
}

// Discover returns popular movies in one genre, or in any genre when
// genreID is 0.
func (c *Client) Discover(ctx context.Context, genreID, page int) (*MoviePage, error) {
	params := pageParams(page)
	if genreID > 0 {
		params.Set("with_genres", strconv.Itoa(genreID))
	}
	params.Set("sort_by", "popularity.desc")
	return c.list(ctx, "discover", "/discover/movie", params)
}

// Details fetches the full record for one movie.
func (c *Client) Details(ctx context.Context, id int) (*MovieDetails, error) {
	const op = "details"
	var d MovieDetails
	if err := c.get(ctx, op, "/movie/"+strconv.Itoa(id), nil, &d); err != nil {
		return nil, err
	}
	if d.ID == 0 || d.Title == "" {
		return nil, &ResponseFormatError{Op: op, Err: errors.New("missing id or title")}
	}
	return &d, nil
}

// Genres fetches the movie genre catalog.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	const op = "genres"
	var resp struct {
		Genres *[]Genre `json:"genres"`
	}
	if err := c.get(ctx, op, "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		return nil, &ResponseFormatError{Op: op, Err: errors.New(`missing "genres"`)}
	}
	return *resp.Genres, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (c *Client) list(ctx context.Context, op, path string, params url.Values) (*MoviePage, error) {
	var resp listResponse
	if err := c.get(ctx, op, path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		return nil, &ResponseFormatError{Op: op, Err: errors.New(`missing "results"`)}
	}
	return &MoviePage{
		Page:         resp.Page,
		Results:      *resp.Results,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}, nil
}

// get performs one GET and decodes a 2xx JSON body into out.
func (c *Client) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("invalid URL: %w", err)}
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(statusMessage(body, resp.Status))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ResponseFormatError{Op: op, Err: err}
	}
	return nil
}

// statusMessage extracts TMDB's status_message from an error body.
func statusMessage(body []byte, fallback string) string {
	var e struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &e) == nil && e.StatusMessage != "" {
		return e.StatusMessage
	}
	return fallback
}
