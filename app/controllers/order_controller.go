package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
	"github.com/foodtruck-labs/foodtruck/pkg/response"
)

const invalidOrderID = "Invalid order ID format (must be YYYYMMDD-####)"

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Index lists orders, optionally for one customer (?customerId=).
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List(r.Context(), r.URL.Query().Get("customerId"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if !decode(w, r, &in) {
		return
	}

	order, err := c.service.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, order)
}

// StoreWithID refuses client-chosen ids.
func (c *OrderController) StoreWithID(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Allow", "GET, PUT")
	response.Error(w, http.StatusMethodNotAllowed,
		"Do not specify an ID when creating orders. Use POST /orders instead.")
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !orderid.Valid(id) {
		response.Error(w, http.StatusBadRequest, invalidOrderID)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !orderid.Valid(id) {
		response.Error(w, http.StatusBadRequest, invalidOrderID)
		return
	}

	var in services.UpdateOrderInput
	if !decode(w, r, &in) {
		return
	}

	order, err := c.service.Update(r.Context(), id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}
