package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/pkg/reqid"
)

func TestMenuClientItem(t *testing.T) {
	seen := make(chan [2]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- [2]string{r.URL.Path, r.Header.Get(reqid.Header)}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"data":{"id":"taco","name":"Taco","price":3.25,"available":true}}`))
	}))
	defer srv.Close()

	client := services.NewMenuClient(srv.URL, time.Second)
	ctx := reqid.WithValue(context.Background(), "req-42")

	item, err := client.Item(ctx, "taco")
	require.NoError(t, err)

	got := <-seen
	assert.Equal(t, "/menu/taco", got[0])
	assert.Equal(t, "req-42", got[1])
	assert.Equal(t, "Taco", item.Name)
	assert.Equal(t, "3.25", item.Price.String())
	assert.True(t, item.Available)
}

func TestMenuClientNotFoundStatuses(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadRequest} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := services.NewMenuClient(srv.URL, time.Second).Item(context.Background(), "nope")
		assert.ErrorIs(t, err, repositories.ErrMenuItemNotFound, "status %d", status)
		srv.Close()
	}
}

func TestMenuClientServerErrorIsInfrastructure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := services.NewMenuClient(srv.URL, time.Second).Item(context.Background(), "taco")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrMenuItemNotFound)
	assert.Equal(t, int32(1), calls.Load(), "no retries")
}

func TestMenuClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	_, err := services.NewMenuClient(srv.URL, 50*time.Millisecond).Item(context.Background(), "taco")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrMenuItemNotFound)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestMenuClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := services.NewMenuClient(base, time.Second).Item(context.Background(), "taco")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrMenuItemNotFound)
}
