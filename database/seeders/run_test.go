package seeders_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/database/seeders"
	"github.com/foodtruck-labs/foodtruck/internal/testdb"
)

func TestRunAllIsRepeatable(t *testing.T) {
	db := testdb.New(t)
	var out bytes.Buffer

	require.NoError(t, seeders.RunAll(db, &out))
	require.NoError(t, seeders.RunAll(db, &out))
	assert.Contains(t, out.String(), "Seeding: menu")

	var items []models.MenuItem
	require.NoError(t, db.Order("name").Find(&items).Error)
	require.Len(t, items, 5)

	var churros models.MenuItem
	require.NoError(t, db.Where("name = ?", "Churros").First(&churros).Error)
	assert.False(t, churros.Available)
}
