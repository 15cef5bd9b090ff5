package routes

import (
	"github.com/foodtruck-labs/foodtruck/app/controllers"
	"github.com/foodtruck-labs/foodtruck/pkg/router"
)

// RegisterOrderAPI mounts the order service endpoints.
func RegisterOrderAPI(r *router.Router, orders *controllers.OrderController) {
	g := r.Group("/orders")
	g.Get("/health", "orders.health", controllers.Health("orders"))
	g.Get("/", "orders.index", orders.Index)
	g.Post("/", "orders.store", orders.Store)
	g.Post("/{id}", "orders.store_with_id", orders.StoreWithID)
	g.Get("/{id}", "orders.show", orders.Show)
	g.Put("/{id}", "orders.update", orders.Update)
}

// RegisterMenuAPI mounts the menu service endpoints.
func RegisterMenuAPI(r *router.Router, menu *controllers.MenuController) {
	g := r.Group("/menu")
	g.Get("/health", "menu.health", controllers.Health("menu"))
	g.Get("/", "menu.index", menu.Index)
	g.Post("/", "menu.store", menu.Store)
	g.Get("/{id}", "menu.show", menu.Show)
	g.Put("/{id}", "menu.update", menu.Update)
	g.Delete("/{id}", "menu.destroy", menu.Destroy)
}
