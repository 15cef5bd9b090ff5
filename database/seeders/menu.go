package seeders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodtruck-labs/foodtruck/app/models"
)

func init() {
	Register("menu", SeedMenu)
}

var demoMenu = []struct {
	name      string
	price     string
	available bool
}{
	{"Carne Asada Taco", "3.50", true},
	{"Al Pastor Taco", "3.25", true},
	{"Veggie Burrito", "9.00", true},
	{"Elote", "4.50", true},
	{"Churros", "5.00", false},
}

// SeedMenu inserts the demo menu. Items are matched by name, so running it
// again adds nothing.
func SeedMenu(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range demoMenu {
			item := models.MenuItem{
				ID:        uuid.NewString(),
				Name:      d.name,
				Price:     decimal.RequireFromString(d.price),
				Available: d.available,
			}
			if err := tx.Where(models.MenuItem{Name: d.name}).
				Attrs(item).
				FirstOrCreate(&models.MenuItem{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
