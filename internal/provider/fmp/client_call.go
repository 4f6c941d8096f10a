package fmp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// BuildURL returns the request URL of endpoint with params and the API key.
func (c *Client) BuildURL(endpoint string, params Params) (string, error) {
	u, err := url.Parse(c.baseURL + c.version + endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}

	query := u.Query()
	if err := params.encode(query); err != nil {
		return "", err
	}
	if c.debug {
		u.RawQuery = query.Encode()
		c.logger.Info("fmp request", "method", http.MethodGet, "url", u.String())
	}
	query.Set("apikey", c.apiKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Call performs a GET against endpoint and returns the decoded JSON body.
// When validation is enabled and shape is not nil, the body is checked and
// coerced by shape; otherwise it is returned unchanged.
func (c *Client) Call(ctx context.Context, endpoint string, shape *Shape, params Params) (any, error) {
	rawURL, err := c.BuildURL(endpoint, params)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.requestError(ctx, callCtx, endpoint, err)
	}
	defer res.Body.Close()

	c.logger.Debug("fmp response", "endpoint", endpoint, "status", res.StatusCode)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Endpoint: endpoint}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.requestError(ctx, callCtx, endpoint, err)
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Endpoint: endpoint, Err: errors.New("trailing data after JSON value")}
	}

	if shape == nil || !c.validate {
		return raw, nil
	}
	coerced, issues := shape.Validate(raw)
	if len(issues) > 0 {
		return nil, &ValidationError{Endpoint: endpoint, Shape: shape.Name, Issues: issues}
	}
	return coerced, nil
}

// Any calls an endpoint this client has no method for. A nil shape skips
// validation.
func (c *Client) Any(ctx context.Context, endpoint string, shape *Shape, params Params) (any, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, required("Any", "endpoint")
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.Call(ctx, endpoint, shape, params)
}

// requestError maps an expired client timeout to a TimeoutError. Other
// failures, including cancellation by the caller, are wrapped as is.
func (c *Client) requestError(parent, callCtx context.Context, endpoint string, err error) error {
	if c.timeout > 0 && parent.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Endpoint: endpoint, Timeout: c.timeout, Err: context.DeadlineExceeded}
	}
	return fmt.Errorf("performing request: %w", err)
}

// fetch runs Call and decodes the result into T.
func fetch[T any](ctx context.Context, c *Client, endpoint string, shape *Shape, params Params) ([]T, error) {
	v, err := c.Call(ctx, endpoint, shape, params)
	if err != nil {
		return nil, err
	}
	return decode[T](endpoint, v)
}

// decode converts a coerced or raw value into typed records.
func decode[T any](endpoint string, v any) ([]T, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	var out []T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
