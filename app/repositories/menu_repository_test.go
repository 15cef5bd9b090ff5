package repositories_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/internal/testdb"
)

func TestMenuRepositoryCRUD(t *testing.T) {
	repo := repositories.NewMenuRepository(testdb.New(t))
	ctx := context.Background()

	item := &models.MenuItem{ID: "6f1c1b8e-6a8e-4d7e-9d3e-2f8b0a1c9e11", Name: "Elote", Price: decimal.RequireFromString("4.00"), Available: false}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Elote", got.Name)
	assert.False(t, got.Available, "explicit false must survive insert")

	got.Available = true
	got.Price = decimal.RequireFromString("4.50")
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, again.Available)
	assert.True(t, again.Price.Equal(decimal.RequireFromString("4.5")))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, item.ID))
	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, repositories.ErrMenuItemNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), repositories.ErrMenuItemNotFound)
}
