package fmp_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"fmpocket/internal/provider/fmp"
)

func mockQuote() map[string]any {
	return map[string]any{
		"symbol":           "AAPL",
		"name":             "Apple Inc.",
		"exchange":         "NASDAQ",
		"price":            "187.5",
		"changePercentage": 0.42,
		"change":           0.78,
		"volume":           51234567,
		"dayLow":           185.1,
		"dayHigh":          188.2,
		"yearHigh":         199.62,
		"yearLow":          164.08,
		"marketCap":        nil,
		"priceAvg50":       182.3,
		"priceAvg200":      179.9,
		"open":             186,
		"previousClose":    186.72,
		"timestamp":        1704200000,
		"extra":            "kept",
	}
}

func TestCall_Coerces(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "/stable/quote", req.URL.Path)
			require.Equal(t, "AAPL", req.URL.Query().Get("symbol"))
			require.Equal(t, "test-key", req.URL.Query().Get("apikey"))
			return respond(t, http.StatusOK, []any{mockQuote()}), nil
		}).
		Times(1)

	// Act: call the quote endpoint with its shape
	client := newClient(t, httpClient)
	v, err := client.Call(t.Context(), "/quote", fmp.QuoteShape, fmp.Params{"symbol": "AAPL"})
	require.NoError(t, err)

	// Assert: numeric strings are coerced, nulls and extra members survive
	records, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, records, 1)

	record, ok := records[0].(map[string]any)
	require.True(t, ok)
	require.InEpsilon(t, 187.5, record["price"], 0.0001)
	require.Nil(t, record["marketCap"])
	require.Equal(t, "kept", record["extra"])
}

func TestQuote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(respond(t, http.StatusOK, []any{mockQuote()}), nil).
		Times(1)

	client := newClient(t, httpClient)
	quotes, err := client.Quote(t.Context(), " AAPL ")
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	require.Equal(t, "AAPL", quotes[0].Symbol)
	require.InEpsilon(t, 187.5, quotes[0].Price, 0.0001)
	require.Nil(t, quotes[0].MarketCap)
	require.InEpsilon(t, 1704200000.0, quotes[0].Timestamp, 0.0001)
}

func TestCall_ErrValidation(t *testing.T) {
	t.Parallel()

	quote := mockQuote()
	delete(quote, "price")
	quote["volume"] = nil
	body := []any{quote}

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(respond(t, http.StatusOK, body), nil).
		Times(1)

	// Act: a record missing a required member
	client := newClient(t, httpClient)
	_, err := client.Quote(t.Context(), "AAPL")

	// Assert: every issue is reported with its path
	require.ErrorIs(t, err, fmp.ErrValidation)

	var valErr *fmp.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, "/quote", valErr.Endpoint)
	require.Equal(t, "quote", valErr.Shape)
	require.Contains(t, valErr.Issues, fmp.Issue{Path: "[0].price", Message: "required"})
	require.Contains(t, valErr.Issues, fmp.Issue{Path: "[0].volume", Message: "expected number, got null"})
}

func TestCall_WithoutValidation(t *testing.T) {
	t.Parallel()

	quote := mockQuote()
	delete(quote, "price")

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(respond(t, http.StatusOK, []any{quote}), nil).
		Times(1)

	// Act: the same payload with validation disabled
	client := newClient(t, httpClient, fmp.WithValidation(false))
	v, err := client.Call(t.Context(), "/quote", fmp.QuoteShape, fmp.Params{"symbol": "AAPL"})

	// Assert: the raw body is returned untouched
	require.NoError(t, err)
	record := v.([]any)[0].(map[string]any)
	require.NotContains(t, record, "price")
	require.Equal(t, "NASDAQ", record["exchange"])
}

func TestCall_ErrHTTP(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(respond(t, http.StatusNotFound, "Not Found"), nil).
		Times(1)

	client := newClient(t, httpClient)
	_, err := client.ShortQuote(t.Context(), "AAPL")
	require.ErrorIs(t, err, fmp.ErrHTTP)

	var httpErr *fmp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	require.Equal(t, "/quote-short", httpErr.Endpoint)
}

func TestCall_ErrParse(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"<html>oops</html>", `[] {}`, ""} {
		ctrl := gomock.NewController(t)
		httpClient := NewMockHTTPClient(ctrl)
		httpClient.EXPECT().
			Do(gomock.Any()).
			Return(respond(t, http.StatusOK, body), nil).
			Times(1)

		client := newClient(t, httpClient)
		_, err := client.Call(t.Context(), "/quote", nil, nil)
		require.ErrorIs(t, err, fmp.ErrParse, "body %q", body)
	}
}

func TestCall_ErrDecodeWithoutValidation(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(respond(t, http.StatusOK, []any{map[string]any{"symbol": "AAPL", "price": "n/a"}}), nil).
		Times(1)

	// Act: an uncoerced string cannot fill a float field
	client := newClient(t, httpClient, fmp.WithValidation(false))
	_, err := client.ShortQuote(t.Context(), "AAPL")

	// Assert: the typed decode fails as a parse error
	require.ErrorIs(t, err, fmp.ErrParse)
}

func TestCall_ErrRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	client := newClient(t, httpClient)
	_, err := client.Call(t.Context(), "/quote", nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
	require.NotErrorIs(t, err, fmp.ErrTimeout)
}

func TestCall_ErrTimeout(t *testing.T) {
	t.Parallel()

	// Arrange: a server slower than the client timeout
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client, err := fmp.New("test-key", fmp.WithBaseURL(server.URL+"/"), fmp.WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	// Act: call the slow endpoint
	_, err = client.ShortQuote(t.Context(), "AAPL")

	// Assert: the expiry is reported as a timeout
	require.ErrorIs(t, err, fmp.ErrTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	var timeoutErr *fmp.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	require.Equal(t, "/quote-short", timeoutErr.Endpoint)
	require.Equal(t, 20*time.Millisecond, timeoutErr.Timeout)
}

func TestCall_CallerCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		}).
		Times(1)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	// Act: the caller gives up before the client timeout
	client := newClient(t, httpClient, fmp.WithTimeout(time.Minute))
	_, err := client.Call(ctx, "/quote", nil, nil)

	// Assert: cancellation is not reported as a timeout
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, fmp.ErrTimeout)
}

func TestAny(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "/stable/sector-performance-snapshot", req.URL.Path)
			require.Equal(t, "2024-02-01", req.URL.Query().Get("date"))
			return respond(t, http.StatusOK, []any{map[string]any{"sector": "Energy"}}), nil
		}).
		Times(1)

	client := newClient(t, httpClient)
	v, err := client.Any(t.Context(), "sector-performance-snapshot", nil, fmp.Params{"date": "2024-02-01"})
	require.NoError(t, err)
	require.Len(t, v, 1)
}

func TestAny_ErrEmptyEndpoint(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().Do(gomock.Any()).Times(0)

	client := newClient(t, httpClient)
	_, err := client.Any(t.Context(), " ", nil, nil)
	require.ErrorIs(t, err, fmp.ErrArgument)
}
