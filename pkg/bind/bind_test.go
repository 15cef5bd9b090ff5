package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/config"
	"github.com/foodtruck-labs/foodtruck/pkg/bind"
)

type input struct {
	Name string `json:"name" validate:"required"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestJSON(t *testing.T) {
	var in input
	errs, err := bind.JSON(httptest.NewRecorder(), post(`{"name":"Taco"}`), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "Taco", in.Name)
}

func TestJSONValidationErrors(t *testing.T) {
	var in input
	errs, err := bind.JSON(httptest.NewRecorder(), post(`{}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestJSONMalformed(t *testing.T) {
	var in input

	_, err := bind.JSON(httptest.NewRecorder(), post(`{"name":`), &in)
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = bind.JSON(httptest.NewRecorder(), post(``), &in)
	assert.ErrorIs(t, err, bind.ErrEmptyBody)
}

func TestJSONTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	t.Cleanup(func() { config.Set("MAX_BODY_BYTES", "") })

	var in input
	_, err := bind.JSON(httptest.NewRecorder(), post(`{"name":"`+strings.Repeat("a", 64)+`"}`), &in)
	assert.ErrorContains(t, err, "too large")
}
