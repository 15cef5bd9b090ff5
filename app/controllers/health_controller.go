package controllers

import (
	"net/http"

	"github.com/foodtruck-labs/foodtruck/pkg/response"
)

// Health answers liveness probes. It touches no dependency.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"service": service, "status": "ok"})
	}
}
