package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
)

// ErrMenuItemNotFound is returned when no menu item has the requested id.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepository handles database operations for MenuItem.
type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// All returns every menu item, newest first.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	items := []models.MenuItem{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("menu: list: %w", err)
	}
	return items, nil
}

// FindByID looks up a menu item by primary key.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (*models.MenuItem, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("menu: find %s: %w", id, err)
	}
	return &item, nil
}

// Create persists a new menu item.
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("menu: insert: %w", err)
	}
	return nil
}

// Update persists name, price and availability of an existing item.
func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	res := r.db.WithContext(ctx).
		Model(item).
		Select("name", "price", "available", "updated_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("menu: update %s: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

// Delete removes the item with id.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if res.Error != nil {
		return fmt.Errorf("menu: delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
