package app

import (
	"net/http"

	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
	"github.com/foodtruck-labs/foodtruck/pkg/middleware"
	"github.com/foodtruck-labs/foodtruck/pkg/reqid"
	"github.com/foodtruck-labs/foodtruck/pkg/response"
	"github.com/foodtruck-labs/foodtruck/pkg/router"
)

// router wires the global middleware, outermost first:
//
//	metrics → request id → access log → recovery
//
// Recovery is innermost so a panic is logged through the request-scoped
// logger and still shows up as a 500 in the access log.
func (a *Application) router() *router.Router {
	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"service": a.name, "status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}
