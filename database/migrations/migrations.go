// Package migrations registers the schema of both services. Importing it
// for side effects makes the migrations visible to pkg/migration.
package migrations

import (
	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/migration"
)

func init() {
	migration.Register("20251101000000_create_menu_table", createMenuTable{})
	migration.Register("20251101000001_create_orders_table", createOrdersTable{})
	migration.Register("20251101000002_create_order_counters_table", createOrderCountersTable{})
}

type createMenuTable struct{}

func (createMenuTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.MenuItem{}) }

func (createMenuTable) Down(db *gorm.DB) error { return db.Migrator().DropTable(&models.MenuItem{}) }

type createOrdersTable struct{}

func (createOrdersTable) Up(db *gorm.DB) error { return db.AutoMigrate(&models.Order{}) }

func (createOrdersTable) Down(db *gorm.DB) error { return db.Migrator().DropTable(&models.Order{}) }

// The counter table holds one row per calendar day.
type createOrderCountersTable struct{}

func (createOrderCountersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.OrderCounter{})
}

func (createOrderCountersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderCounter{})
}
