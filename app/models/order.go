package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// StatusCreated is the only state an order can start in. Later states are
// free-form and assigned by callers.
const StatusCreated = "CREATED"

// DefaultPaymentMethod applies when a create request names none.
const DefaultPaymentMethod = "cash"

// LineItem is one menu reference inside an order. Name and price are copies
// taken when the order was validated, not live references.
type LineItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
}

// Subtotal is price × qty.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Qty)))
}

// SnapshotLineItem copies the current name and price of item into a new
// line item. Later menu edits never touch the returned value.
func SnapshotLineItem(item MenuItem, qty int) LineItem {
	return LineItem{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
		Qty:   qty,
	}
}

// TotalOf sums the subtotals of items.
func TotalOf(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Order is a customer order. ID has the form YYYYMMDD-#### and never changes
// after creation.
type Order struct {
	ID            string                        `gorm:"primaryKey;size:32"           json:"id"`
	CustomerID    *string                       `gorm:"size:255;index"               json:"customerId"`
	Items         datatypes.JSONSlice[LineItem] `gorm:"not null"                     json:"items"`
	PaymentMethod string                        `gorm:"size:50;not null"             json:"paymentMethod"`
	Total         decimal.Decimal               `gorm:"type:decimal(12,2);not null"  json:"total"`
	Status        string                        `gorm:"size:50;not null"             json:"status"`
	CreatedAt     time.Time                     `gorm:"index"                        json:"createdAt"`
	UpdatedAt     time.Time                     `                                    json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

// SetItems replaces the line items and recomputes the total in one step so
// the two can never disagree.
func (o *Order) SetItems(items []LineItem) {
	o.Items = datatypes.JSONSlice[LineItem](items)
	o.Total = TotalOf(items)
}
