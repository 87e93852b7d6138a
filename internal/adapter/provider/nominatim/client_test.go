package nominatim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GeocoderConfig{
		BaseURL:        baseURL,
		UserAgent:      "test-agent",
		Timeout:        2 * time.Second,
		RequestsPerSec: 1000,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestReverse_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "37.77", r.URL.Query().Get("lat"))
		assert.Equal(t, "-122.42", r.URL.Query().Get("lon"))
		assert.Equal(t, "10", r.URL.Query().Get("zoom"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"display_name":"San Francisco, California, United States",
			"address":{"city":"San Francisco","state":"California","country_code":"us"}}`)
	}))
	defer srv.Close()

	addr, err := newTestClient(srv.URL).Reverse(context.Background(), domain.Point{Latitude: 37.77, Longitude: -122.42})
	require.NoError(t, err)
	assert.Equal(t, "San Francisco", addr.City)
	assert.Equal(t, "California", addr.State)
	assert.Equal(t, "us", addr.CountryCode)
}

func TestReverse_NonOKStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient("https://nominatim.test")
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "https://nominatim.test/reverse", httpmock.NewStringResponder(http.StatusTooManyRequests, ""))
	c.httpClient.Transport = mt

	_, err := c.Reverse(context.Background(), domain.Point{Latitude: 1, Longitude: 2})
	require.ErrorIs(t, err, domain.ErrProvider)

	var pe *provider.Error
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
}

func TestReverse_MalformedBody(t *testing.T) {
	t.Parallel()

	c := newTestClient("https://nominatim.test")
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "https://nominatim.test/reverse", httpmock.NewStringResponder(http.StatusOK, "<html>"))
	c.httpClient.Transport = mt

	_, err := c.Reverse(context.Background(), domain.Point{})
	assert.ErrorIs(t, err, domain.ErrProvider)
}

func TestReverse_RateLimited(t *testing.T) {
	t.Parallel()

	c := NewClient(config.GeocoderConfig{BaseURL: "https://nominatim.test", RequestsPerSec: 0.001},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, "https://nominatim.test/reverse", httpmock.NewStringResponder(http.StatusOK, `{"address":{}}`))
	c.httpClient.Transport = mt

	_, err := c.Reverse(context.Background(), domain.Point{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = c.Reverse(ctx, domain.Point{})
	require.ErrorIs(t, err, domain.ErrProvider)
	assert.Equal(t, 1, mt.GetTotalCallCount())
}
