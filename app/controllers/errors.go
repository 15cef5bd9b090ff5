package controllers

import (
	"errors"
	"net/http"

	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/app/services"
	"github.com/foodtruck-labs/foodtruck/pkg/bind"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
	"github.com/foodtruck-labs/foodtruck/pkg/response"
)

// fail maps a service error to a response. Client errors keep their
// message; anything unrecognised is logged and answered with a bare 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *services.RequestError
	switch {
	case errors.As(err, &reqErr):
		response.Error(w, http.StatusBadRequest, reqErr.Message)
	case errors.Is(err, repositories.ErrOrderNotFound):
		response.NotFound(w)
	case errors.Is(err, repositories.ErrMenuItemNotFound):
		response.Error(w, http.StatusNotFound, "Item not found.")
	default:
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		response.InternalError(w)
	}
}

// decode binds the JSON body into dest. It reports false after writing a
// 400 response. An empty body decodes to the zero value so the service can
// name the missing fields.
func decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	errs, err := bind.JSON(w, r, dest)
	switch {
	case errors.Is(err, bind.ErrEmptyBody):
		return true
	case err != nil:
		response.Error(w, http.StatusBadRequest, err.Error())
		return false
	case errs != nil:
		response.ValidationError(w, errs)
		return false
	}
	return true
}
