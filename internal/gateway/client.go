package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/schoolsharthi/webclient/internal/metrics"
)

// Client is the single transport for every SchoolSharthi API call. It
// attaches the bearer token found in the request context, converts non-2xx
// responses into *APIError and maps 401 onto ErrSessionExpired.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *metrics.Collector
	logger     *slog.Logger

	Auth     *AuthBundle
	Notes    *NotesBundle
	PYQs     *PYQsBundle
	Admin    *AdminBundle
	AI       *AIBundle
	Career   *CareerBundle
	Learning *LearningBundle
	Revision *RevisionBundle
	Search   *SearchBundle
	Exam     *ExamBundle
}

type Options struct {
	Timeout time.Duration
	RPS     float64
	Burst   int
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

func New(baseURL string, opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if opts.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst)
	}

	c.Auth = &AuthBundle{c: c}
	c.Notes = &NotesBundle{c: c}
	c.PYQs = &PYQsBundle{c: c}
	c.Admin = &AdminBundle{c: c}
	c.AI = &AIBundle{c: c}
	c.Career = &CareerBundle{c: c}
	c.Learning = &LearningBundle{c: c}
	c.Revision = &RevisionBundle{c: c}
	c.Search = &SearchBundle{c: c}
	c.Exam = &ExamBundle{c: c}

	return c
}

func (c *Client) getJSON(ctx context.Context, bundle, path string, query url.Values, out any) error {
	return c.do(ctx, bundle, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, bundle, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode body: %w", err)
		}
		r = bytes.NewReader(data)
	}
	return c.do(ctx, bundle, http.MethodPost, path, nil, r, "application/json", out)
}

func (c *Client) postForm(ctx context.Context, bundle, path string, form *Form, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("gateway: encode form: %w", err)
	}
	return c.do(ctx, bundle, http.MethodPost, path, nil, body, contentType, out)
}

func (c *Client) deleteJSON(ctx context.Context, bundle, path string, out any) error {
	return c.do(ctx, bundle, http.MethodDelete, path, nil, nil, "", out)
}

func (c *Client) do(ctx context.Context, bundle, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("gateway: %s %s: %w", method, path, err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("gateway: create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.RecordUnreachable(bundle)
		}
		c.logger.Warn("upstream unreachable", "bundle", bundle, "method", method, "path", path, "error", err)
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gateway: read response: %w", err)
	}

	if c.metrics != nil {
		c.metrics.RecordUpstream(bundle, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && c.metrics != nil {
			c.metrics.RecordSessionExpiry()
		}
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}
