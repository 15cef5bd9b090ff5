package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
)

// CounterRepository hands out per-day order sequence values.
type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next returns the next sequence value for dayKey: 1 for the first call of
// the day, previous+1 afterwards.
//
// tx must be the transaction that will also persist the order. The increment
// is a single insert-or-increment statement, so the store serializes
// concurrent callers on the counter row; the row stays locked by tx until it
// commits or rolls back, which makes the read-back below see tx's own write.
// A rollback of tx discards the increment.
func (r *CounterRepository) Next(tx *gorm.DB, dayKey string) (int64, error) {
	defer metrics.ObserveDBQuery("upsert", time.Now())

	row := models.OrderCounter{DayKey: dayKey, LastValue: 1}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_value": gorm.Expr("order_counters.last_value + 1"),
		}),
	}).Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("counters: increment %s: %w", dayKey, err)
	}
	metrics.SequenceAllocated.Inc()

	var current models.OrderCounter
	if err := tx.Where("day_key = ?", dayKey).Take(&current).Error; err != nil {
		return 0, fmt.Errorf("counters: read %s: %w", dayKey, err)
	}
	return current.LastValue, nil
}

// Current returns the last value handed out for dayKey, or 0 if no order has
// been allocated that day.
func (r *CounterRepository) Current(ctx context.Context, dayKey string) (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var row models.OrderCounter
	err := r.db.WithContext(ctx).Where("day_key = ?", dayKey).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counters: read %s: %w", dayKey, err)
	}
	return row.LastValue, nil
}
