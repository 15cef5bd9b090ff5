package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number, e.g. 4.5 rather than "4.5".
	decimal.MarshalJSONWithoutQuotes = true
}

// MenuItem is a dish or drink offered by the truck.
type MenuItem struct {
	ID        string          `gorm:"primaryKey;size:36"             json:"id"`
	Name      string          `gorm:"size:255;not null"              json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"    json:"price"`
	Available bool            `gorm:"not null"                       json:"available"`
	CreatedAt time.Time       `gorm:"index"                          json:"createdAt"`
	UpdatedAt time.Time       `                                      json:"updatedAt"`
}

func (MenuItem) TableName() string { return "menu" }
