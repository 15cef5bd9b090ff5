package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/pkg/response"
)

type MenuController struct {
	service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{service: service}
}

func (c *MenuController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := c.service.List(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, items)
}

func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	item, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, item)
}

func (c *MenuController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.CreateMenuItemInput
	if !decode(w, r, &in) {
		return
	}

	item, err := c.service.Create(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, item)
}

func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateMenuItemInput
	if !decode(w, r, &in) {
		return
	}

	item, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, item)
}

func (c *MenuController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, r, err)
		return
	}
	response.NoContent(w)
}
