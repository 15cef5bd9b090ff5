package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
	"github.com/foodtruck-labs/foodtruck/pkg/orderid"
)

// ErrOrderNotFound is returned when no order has the requested id.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db       *gorm.DB
	counters *CounterRepository
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db, counters: NewCounterRepository(db)}
}

// CreateWithNextID allocates today's next sequence value for dayKey, stamps
// order.ID with it and inserts the order, all in one transaction. On any
// error nothing is persisted and order.ID is cleared.
func (r *OrderRepository) CreateWithNextID(ctx context.Context, dayKey string, order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := r.counters.Next(tx, dayKey)
		if err != nil {
			return err
		}

		order.ID = orderid.Format(dayKey, seq)
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("orders: insert %s: %w", order.ID, err)
		}
		return nil
	})
	if err != nil {
		order.ID = ""
		return err
	}
	return nil
}

// FindByID looks up an order by its identifier.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("orders: find %s: %w", id, err)
	}
	return &order, nil
}

// List returns orders newest first. A non-empty customerID restricts the
// result to that customer.
func (r *OrderRepository) List(ctx context.Context, customerID string) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	q := r.db.WithContext(ctx).Order("created_at desc").Order("id desc")
	if customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}

	orders := []models.Order{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return orders, nil
}

// Update persists the mutable fields of order: items, total, payment method
// and status. The identifier and creation time are never written.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	res := r.db.WithContext(ctx).
		Model(order).
		Select("items", "total", "payment_method", "status", "updated_at").
		Updates(order)
	if res.Error != nil {
		return fmt.Errorf("orders: update %s: %w", order.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
