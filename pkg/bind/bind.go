// Package bind decodes a JSON request body into a struct and validates it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/foodtruck-labs/foodtruck/config"
	"github.com/foodtruck-labs/foodtruck/pkg/validate"
)

const defaultMaxBodyBytes = 1 << 20

// ErrEmptyBody is returned for a request without a body.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body into dest, capped at MAX_BODY_BYTES, then applies the
// `validate` tags of dest. Field errors come back in errs; err is reserved
// for bodies that are not valid JSON or are too large.
func JSON(w http.ResponseWriter, r *http.Request, dest any) (errs map[string]string, err error) {
	limit := int64(config.Int("MAX_BODY_BYTES", defaultMaxBodyBytes))
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil, ErrEmptyBody
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
