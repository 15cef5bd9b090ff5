package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
)

const menuListKey = "all"

// MenuCache is the subset of pkg/cache the menu service uses. A nil
// *cache.Redis satisfies it and never hits.
type MenuCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}

type CreateMenuItemInput struct {
	Name      string           `json:"name"      validate:"required,max=255"`
	Price     *decimal.Decimal `json:"price"     validate:"required"`
	Available *bool            `json:"available"`
}

type UpdateMenuItemInput struct {
	Name      *string          `json:"name"      validate:"nullable,max=255"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
}

// MenuService owns the menu catalog. Reads are served from the cache when
// possible and every write invalidates the affected keys.
type MenuService struct {
	store MenuStore
	cache MenuCache
	ttl   time.Duration
}

func NewMenuService(store MenuStore, cache MenuCache, ttl time.Duration) *MenuService {
	return &MenuService{store: store, cache: cache, ttl: ttl}
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if s.cache.Get(ctx, menuListKey, &items) {
		return items, nil
	}

	items, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, menuListKey, items)
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	if err := checkMenuID(id); err != nil {
		return nil, err
	}

	var item models.MenuItem
	if s.cache.Get(ctx, itemKey(id), &item) {
		return &item, nil
	}

	found, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, itemKey(id), found)
	return found, nil
}

// Create stores a new item under a fresh UUID. Available defaults to true.
func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*models.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return nil, invalid("Name and price required.")
	}
	if in.Price.IsNegative() {
		return nil, invalid("Price must not be negative.")
	}

	item := &models.MenuItem{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     *in.Price,
		Available: true,
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.store.Create(ctx, item); err != nil {
		return nil, err
	}
	s.forget(ctx, menuListKey)
	return item, nil
}

// Update overwrites only the fields present in in.
func (s *MenuService) Update(ctx context.Context, id string, in UpdateMenuItemInput) (*models.MenuItem, error) {
	if err := checkMenuID(id); err != nil {
		return nil, err
	}

	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("Name must not be empty.")
		}
		item.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, invalid("Price must not be negative.")
		}
		item.Price = *in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}

	if err := s.store.Update(ctx, item); err != nil {
		return nil, err
	}
	s.forget(ctx, menuListKey, itemKey(id))
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	if err := checkMenuID(id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(ctx, menuListKey, itemKey(id))
	return nil
}

func (s *MenuService) remember(ctx context.Context, key string, v any) {
	if err := s.cache.Set(ctx, key, v, s.ttl); err != nil {
		logger.WithCtx(ctx).Warn("menu cache write failed", "key", key, "error", err)
	}
}

func (s *MenuService) forget(ctx context.Context, keys ...string) {
	if err := s.cache.Del(ctx, keys...); err != nil {
		logger.WithCtx(ctx).Warn("menu cache invalidation failed", "keys", keys, "error", err)
	}
}

func itemKey(id string) string { return "item:" + id }

func checkMenuID(id string) error {
	if uuid.Validate(id) != nil {
		return invalid("Invalid menu ID (must be UUID)")
	}
	return nil
}
