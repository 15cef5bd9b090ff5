package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foodtruck-labs/foodtruck/app/events"
	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/pkg/event"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
)

// DefaultLookupConcurrency bounds parallel menu lookups for one order.
const DefaultLookupConcurrency = 8

// MenuCatalog resolves menu item ids. Implementations return
// repositories.ErrMenuItemNotFound for ids the catalog does not know.
type MenuCatalog interface {
	Item(ctx context.Context, id string) (*models.MenuItem, error)
}

// OrderStore is the persistence the order service needs.
type OrderStore interface {
	CreateWithNextID(ctx context.Context, dayKey string, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, customerID string) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

type LineItemInput struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

type CreateOrderInput struct {
	CustomerID    *string         `json:"customerId"`
	Items         []LineItemInput `json:"items"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateOrderInput carries a partial update. A nil field is left untouched;
// a non-nil empty Items is a validation error.
type UpdateOrderInput struct {
	Items         []LineItemInput `json:"items"`
	PaymentMethod *string         `json:"paymentMethod"`
	Status        *string         `json:"status"`
}

type OrderService struct {
	store       OrderStore
	catalog     MenuCatalog
	clock       orderid.Clock
	events      *event.Dispatcher
	lookupLimit int
}

// NewOrderService wires the service. dispatcher may be nil, in which case no
// events are fired.
func NewOrderService(store OrderStore, catalog MenuCatalog, clock orderid.Clock, dispatcher *event.Dispatcher) *OrderService {
	return &OrderService{
		store:       store,
		catalog:     catalog,
		clock:       clock,
		events:      dispatcher,
		lookupLimit: DefaultLookupConcurrency,
	}
}

// WithLookupConcurrency overrides the number of parallel menu lookups.
func (s *OrderService) WithLookupConcurrency(n int) *OrderService {
	if n > 0 {
		s.lookupLimit = n
	}
	return s
}

// Create validates and prices the requested items, then persists the order
// under the next id of the current day.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	items, err := s.resolve(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		PaymentMethod: in.PaymentMethod,
		Status:        models.StatusCreated,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.DefaultPaymentMethod
	}
	if in.CustomerID != nil && *in.CustomerID != "" {
		customer := *in.CustomerID
		order.CustomerID = &customer
	}
	order.SetItems(items)

	dayKey := s.clock.DayKey()
	if err := s.store.CreateWithNextID(ctx, dayKey, order); err != nil {
		return nil, fmt.Errorf("services: create order: %w", err)
	}
	metrics.OrdersCreated.Inc()

	logger.WithCtx(ctx).Info("order created",
		"order_id", order.ID, "items", len(order.Items), "total", order.Total.String())
	s.fire(ctx, events.OrderCreated, order)
	return order, nil
}

// Update applies the fields present in in to the order with the given id.
// New items are validated exactly like on create and replace the old ones.
func (s *OrderService) Update(ctx context.Context, id string, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Items != nil {
		items, err := s.resolve(ctx, in.Items)
		if err != nil {
			return nil, err
		}
		order.SetItems(items)
	}
	if in.PaymentMethod != nil {
		order.PaymentMethod = *in.PaymentMethod
	}
	if in.Status != nil {
		order.Status = *in.Status
	}

	if err := s.store.Update(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("services: update order %s: %w", id, err)
	}

	s.fire(ctx, events.OrderUpdated, order)
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	return s.store.FindByID(ctx, id)
}

// List returns orders newest first, restricted to customerID when non-empty.
func (s *OrderService) List(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.store.List(ctx, customerID)
}

// resolve checks the line item inputs and snapshots each referenced menu
// item. Lookups run concurrently; the outcome matches checking the items
// one by one in request order, so the first offending item is the one
// reported. An infrastructure failure of any lookup fails the whole call.
func (s *OrderService) resolve(ctx context.Context, inputs []LineItemInput) ([]models.LineItem, error) {
	if len(inputs) == 0 {
		return nil, invalid("Items[] required and must be non-empty")
	}
	for _, in := range inputs {
		if strings.TrimSpace(in.ID) == "" || in.Qty <= 0 {
			return nil, invalid("Each item needs id and qty")
		}
	}

	items := make([]models.LineItem, len(inputs))
	rejections := make([]error, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupLimit)
	for i, in := range inputs {
		g.Go(func() error {
			start := time.Now()
			item, err := s.catalog.Item(gctx, in.ID)
			switch {
			case errors.Is(err, repositories.ErrMenuItemNotFound):
				metrics.ObserveMenuLookup("not_found", start)
				rejections[i] = rejected("One or more menu items not found")
				return nil
			case err != nil:
				metrics.ObserveMenuLookup("error", start)
				return fmt.Errorf("services: menu lookup %s: %w", in.ID, err)
			}
			metrics.ObserveMenuLookup("found", start)

			if !item.Available {
				rejections[i] = rejected(fmt.Sprintf("Item %s not available", in.ID))
				return nil
			}
			items[i] = models.SnapshotLineItem(*item, in.Qty)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range rejections {
		if err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *OrderService) fire(ctx context.Context, name string, order *models.Order) {
	if s.events == nil {
		return
	}
	s.events.Fire(ctx, name, events.OrderEvent{Name: name, Order: *order})
}
