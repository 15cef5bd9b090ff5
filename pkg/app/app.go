// Package app assembles one HTTP service: global middleware, the shared
// /health and /metrics endpoints, and the routes the service registers.
//
//	a := app.New("orders").Routes(func(r *router.Router) {
//	    routes.RegisterOrderAPI(r, orders)
//	})
//	err := a.Serve(ctx, ":4000")
package app

import (
	"context"
	"net/http"

	"github.com/foodtruck-labs/foodtruck/internal/server"
	"github.com/foodtruck-labs/foodtruck/pkg/router"
)

type Application struct {
	name      string
	routesFns []func(*router.Router)
	closers   []func()
	grpcPort  string
}

func New(name string) *Application {
	return &Application{name: name}
}

func (a *Application) Name() string { return a.name }

// Routes adds a route registration callback. Callbacks run in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// OnShutdown registers cleanup that runs after the server has stopped, in
// reverse registration order.
func (a *Application) OnShutdown(fn func()) *Application {
	a.closers = append(a.closers, fn)
	return a
}

// WithGRPC also serves the gRPC health service on port. Empty disables it.
func (a *Application) WithGRPC(port string) *Application {
	a.grpcPort = port
	return a
}

// Handler builds the complete HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.router().Handler()
}

// RouteList returns the routes the handler would serve.
func (a *Application) RouteList() []router.RouteInfo {
	return a.router().Routes()
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
// and runs the OnShutdown hooks.
func (a *Application) Serve(ctx context.Context, addr string) error {
	defer a.close()
	return server.Run(ctx, server.Options{
		Name:     a.name,
		Addr:     addr,
		Handler:  a.Handler(),
		GRPCPort: a.grpcPort,
	})
}

func (a *Application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
