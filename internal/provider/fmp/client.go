package fmp

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fmpocket/internal/httpx"
)

const (
	defaultBaseURL = "https://financialmodelingprep.com/"
	defaultVersion = "stable"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=fmp_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Financial Modeling Prep API.
//
// A Client is safe for concurrent use: its configuration is fixed by New and
// every call is an independent request/response cycle.
type Client struct {
	// apiKey is appended to every request as the apikey query parameter.
	apiKey string
	// baseURL is the vendor host, including the trailing slash.
	baseURL string
	// version is the path segment between the host and the endpoint path.
	version string
	// validate enables shape validation and coercion of responses.
	validate bool
	// debug logs every request URL without the key.
	debug bool
	// timeout bounds a single call. Zero means no bound beyond ctx.
	timeout time.Duration
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	logger *slog.Logger
}

// Option is a configuration option for the FMP client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithVersion sets the API version path segment ("stable" by default).
func WithVersion(version string) Option {
	return func(c *Client) {
		c.version = version
	}
}

// WithValidation toggles response validation. It is on by default.
func WithValidation(validate bool) Option {
	return func(c *Client) {
		c.validate = validate
	}
}

// WithDebug logs each request URL before it is sent. The API key is left out
// of the logged URL.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithTimeout bounds every call. Expiry fails the call with a TimeoutError.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new FMP API client. It fails with a ConfigurationError when
// the key is empty or the base URL cannot be parsed.
func New(key string, options ...Option) (*Client, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, &ConfigurationError{Reason: "API key must be provided"}
	}

	var client = &Client{
		apiKey:     key,
		baseURL:    defaultBaseURL,
		version:    defaultVersion,
		validate:   true,
		httpClient: httpx.New(0),
		header:     http.Header{},
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(client)
	}

	if client.timeout < 0 {
		return nil, &ConfigurationError{Reason: "timeout must not be negative"}
	}
	u, err := url.Parse(client.baseURL + client.version)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &ConfigurationError{Reason: "invalid base URL " + client.baseURL}
	}
	return client, nil
}

// Validating reports whether responses are checked against their shapes.
func (c *Client) Validating() bool { return c.validate }
