// Package kernel assembles the two HTTP services from their dependencies.
// cmd/foodtruck supplies real connections; tests supply SQLite and
// httptest servers.
package kernel

import (
	"time"

	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/controllers"
	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/app/routes"
	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/pkg/app"
	"github.com/foodtruck-labs/foodtruck/pkg/event"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
	"github.com/foodtruck-labs/foodtruck/pkg/router"
)

type MenuDeps struct {
	DB       *gorm.DB
	Cache    services.MenuCache
	CacheTTL time.Duration
}

// Menu builds the menu service.
func Menu(deps MenuDeps) *app.Application {
	svc := services.NewMenuService(repositories.NewMenuRepository(deps.DB), deps.Cache, deps.CacheTTL)
	ctrl := controllers.NewMenuController(svc)

	return app.New("menu").Routes(func(r *router.Router) {
		routes.RegisterMenuAPI(r, ctrl)
	})
}

type OrderDeps struct {
	DB      *gorm.DB
	Catalog services.MenuCatalog
	Clock   orderid.Clock
	// Events may be nil.
	Events            *event.Dispatcher
	LookupConcurrency int
}

// Orders builds the order service.
func Orders(deps OrderDeps) *app.Application {
	svc := services.NewOrderService(
		repositories.NewOrderRepository(deps.DB),
		deps.Catalog,
		deps.Clock,
		deps.Events,
	).WithLookupConcurrency(deps.LookupConcurrency)
	ctrl := controllers.NewOrderController(svc)

	return app.New("orders").Routes(func(r *router.Router) {
		routes.RegisterOrderAPI(r, ctrl)
	})
}
