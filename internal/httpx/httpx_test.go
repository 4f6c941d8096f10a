package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDo_Headers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-UA", r.Header.Get("User-Agent"))
		w.Header().Set("X-Extra", r.Header.Get("X-Extra"))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client := New(time.Second)
	client.Headers = map[string]string{"X-Extra": "default"}

	// Act: a bare request gets the defaults
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)
	res, err := client.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	require.Equal(t, DefaultUserAgent, res.Header.Get("X-UA"))
	require.Equal(t, "default", res.Header.Get("X-Extra"))

	// Act: request headers win over the defaults
	req, err = http.NewRequestWithContext(t.Context(), http.MethodGet, server.URL, http.NoBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")
	req.Header.Set("X-Extra", "mine")
	res, err = client.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	require.Equal(t, "custom", res.Header.Get("X-UA"))
	require.Equal(t, "mine", res.Header.Get("X-Extra"))
}
