package openalex

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/resilience"
)

const (
	defaultBaseURL     = "https://api.openalex.org"
	defaultUserAgent   = "ScholarMatch (mailto:demo@convergent.ai)"
	defaultMinInterval = 25 * time.Millisecond
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3

	// openalexIDPrefix is stripped from fully-qualified record ids before
	// they are used in request paths.
	openalexIDPrefix = "https://openalex.org/"

	maxErrorBodyBytes = 512
)

// Client fetches author, institution, and work records from the scholarly
// catalog. All calls are throttled through a shared minimum-interval gate.
type Client interface {
	SearchAuthors(ctx context.Context, query string, filters Filters, page, perPage int) (*Page[model.Researcher], error)
	SearchInstitutions(ctx context.Context, query string, filters Filters, page, perPage int) (*Page[model.Institution], error)
	GetAuthor(ctx context.Context, id string) (*model.Researcher, error)
	GetAuthorWorks(ctx context.Context, id string, page, perPage int) (*Page[model.Work], error)
	GetInstitution(ctx context.Context, id string) (*model.Institution, error)
	AutocompleteInstitutions(ctx context.Context, query string) ([]InstitutionHint, error)
	TopConcepts(ctx context.Context, field string) ([]ConceptHint, error)
}

// Observer is notified after each outbound catalog call.
type Observer func(operation string, elapsed time.Duration, err error)

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = u }
}

// WithUserAgent overrides the identifying User-Agent header. Upstream
// etiquette expects a contact-style (mailto) string.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) { c.userAgent = ua }
}

// WithMinInterval overrides the minimum spacing between outbound requests.
func WithMinInterval(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithTimeout overrides the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) { c.http.Timeout = d }
}

// WithMaxAttempts overrides how many times a transient upstream failure is
// attempted in total.
func WithMaxAttempts(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.retry.MaxAttempts = n
		}
	}
}

// WithObserver registers a callback invoked after every catalog operation.
func WithObserver(obs Observer) Option {
	return func(c *httpClient) { c.observer = obs }
}

type httpClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	retry     resilience.RetryConfig
	observer  Observer
}

// NewClient creates a catalog client. The throttle gate is owned by the
// client instance: every outbound request waits on it, so no two requests
// are dispatched closer together than the configured interval, regardless
// of caller concurrency.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Every(defaultMinInterval), 1),
		retry:   resilience.DefaultRetryConfig(),
	}
	c.retry.MaxAttempts = defaultMaxAttempts
	for _, o := range opts {
		o(c)
	}
	return c
}

// normalizeID accepts either a bare identifier (A5023888976) or a
// fully-qualified one (https://openalex.org/A5023888976).
func normalizeID(id string) string {
	if len(id) > len(openalexIDPrefix) && id[:len(openalexIDPrefix)] == openalexIDPrefix {
		return id[len(openalexIDPrefix):]
	}
	return id
}

// get performs one throttled, retried GET against the catalog and returns
// the response body. Non-2xx responses become *model.UpstreamError; timeouts
// become *model.UpstreamTimeoutError.
func (c *httpClient) get(ctx context.Context, operation, path string, params url.Values) ([]byte, error) {
	start := time.Now()
	retry := c.retry
	retry.OnRetry = resilience.RetryLogger(operation)
	body, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]byte, error) {
		return c.getOnce(ctx, path, params)
	})
	if c.observer != nil {
		c.observer(operation, time.Since(start), err)
	}
	return body, err
}

func (c *httpClient) getOnce(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "openalex: throttle wait")
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "openalex: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &model.UpstreamTimeoutError{Err: err}
		}
		return nil, eris.Wrap(err, "openalex: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "openalex: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		zap.L().Warn("catalog returned non-success status",
			zap.String("url", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &model.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func pageParams(page, perPage int) url.Values {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 20
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	return params
}
