package models

// OrderCounter holds the last sequence value handed out for one day.
// There is exactly one row per day key; rows are never deleted.
type OrderCounter struct {
	DayKey    string `gorm:"primaryKey;size:8"`
	LastValue int64  `gorm:"not null"`
}

func (OrderCounter) TableName() string { return "order_counters" }
