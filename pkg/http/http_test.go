package http_test

import (
	"context"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/pkg/http"
)

func TestGetReturnsAnyStatus(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(gohttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusNotFound, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.Error(t, resp.Throw())

	var body map[string]string
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, "error", body["status"])
}

func TestGetSendsHeaders(t *testing.T) {
	got := make(chan gohttp.Header, 1)
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		got <- r.Header.Clone()
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).
		Header("X-Request-ID", "abc").
		Header("X-Empty", "").
		Send()
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.NoError(t, resp.Throw())

	h := <-got
	assert.Equal(t, "abc", h.Get("X-Request-ID"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	_, sent := h["X-Empty"]
	assert.False(t, sent)
}

func TestStatusErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		calls.Add(1)
		w.WriteHeader(gohttp.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL).Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, gohttp.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTransportErrorsAreRetried(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {}))
	url := srv.URL
	srv.Close()

	start := time.Now()
	_, err := http.Get(url).Retry(3, 10*time.Millisecond).Send()
	require.Error(t, err)
	// Two backoffs: 10ms then 20ms.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestTimeoutAndCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := http.Get(srv.URL).Timeout(20 * time.Millisecond).Send()
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = http.Get(srv.URL).WithContext(ctx).Retry(5, time.Second).Send()
	assert.ErrorIs(t, err, context.Canceled)
}
