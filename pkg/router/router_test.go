package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(body)) }
}

func tag(v string) router.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Tag", v)
			next.ServeHTTP(w, r)
		})
	}
}

func TestGroupRoutesAndMiddleware(t *testing.T) {
	r := router.New()
	orders := r.Group("/orders/", tag("group"))
	orders.Get("/{id}", "orders.show", ok("show"), tag("route"))
	orders.Put("{id}", "orders.update", ok("update"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/20251112-0001", nil))
	assert.Equal(t, "show", rec.Body.String())
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Tag"))

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/orders/20251112-0001", nil))
	assert.Equal(t, "update", rec.Body.String())
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/menu", "menu.index", ok(""))
	r.Delete("/menu/{id}", "menu.destroy", ok(""))
	r.Get("/health", "", ok(""))

	url, err := r.URL("menu.destroy", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "/menu/abc", url)

	_, err = r.URL("menu.destroy", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)

	assert.Equal(t, []router.RouteInfo{
		{Method: http.MethodGet, Path: "/health"},
		{Method: http.MethodGet, Path: "/menu", Name: "menu.index"},
		{Method: http.MethodDelete, Path: "/menu/{id}", Name: "menu.destroy"},
	}, r.Routes())
}
