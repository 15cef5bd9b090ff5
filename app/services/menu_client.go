package services

import (
	"context"
	"fmt"
	gohttp "net/http"
	"net/url"
	"time"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/pkg/http"
	"github.com/foodtruck-labs/foodtruck/pkg/reqid"
)

// MenuClient reads menu items from the menu service over HTTP. It makes a
// single attempt per lookup.
type MenuClient struct {
	baseURL string
	timeout time.Duration
}

func NewMenuClient(baseURL string, timeout time.Duration) *MenuClient {
	return &MenuClient{baseURL: baseURL, timeout: timeout}
}

// Item fetches one menu item. Unknown and malformed ids both yield
// repositories.ErrMenuItemNotFound; any other failure is returned as is.
func (c *MenuClient) Item(ctx context.Context, id string) (*models.MenuItem, error) {
	resp, err := http.Get(c.baseURL + "/menu/" + url.PathEscape(id)).
		WithContext(ctx).
		Header(reqid.Header, reqid.FromCtx(ctx)).
		Timeout(c.timeout).
		Send()
	if err != nil {
		return nil, fmt.Errorf("menu client: %w", err)
	}

	switch {
	case resp.StatusCode == gohttp.StatusNotFound, resp.StatusCode == gohttp.StatusBadRequest:
		return nil, repositories.ErrMenuItemNotFound
	case !resp.OK():
		return nil, fmt.Errorf("menu client: item %s: menu service answered %d", id, resp.StatusCode)
	}

	var body struct {
		Data *models.MenuItem `json:"data"`
	}
	if err := resp.JSON(&body); err != nil {
		return nil, fmt.Errorf("menu client: item %s: %w", id, err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("menu client: item %s: empty response", id)
	}
	return body.Data, nil
}
