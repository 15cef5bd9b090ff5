package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/app/repositories"
	"github.com/foodtruck-labs/foodtruck/internal/testdb"
)

func newOrder(customer string, qty int) *models.Order {
	o := &models.Order{PaymentMethod: models.DefaultPaymentMethod, Status: models.StatusCreated}
	if customer != "" {
		o.CustomerID = &customer
	}
	o.SetItems([]models.LineItem{{ID: "m1", Name: "Taco", Price: decimal.RequireFromString("3.25"), Qty: qty}})
	return o
}

func TestCreateWithNextIDAssignsSequentialIDs(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewOrderRepository(db)
	ctx := context.Background()

	first := newOrder("", 1)
	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", first))
	second := newOrder("", 2)
	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", second))
	nextDay := newOrder("", 1)
	require.NoError(t, repo.CreateWithNextID(ctx, "20251113", nextDay))

	assert.Equal(t, "20251112-0001", first.ID)
	assert.Equal(t, "20251112-0002", second.ID)
	assert.Equal(t, "20251113-0001", nextDay.ID)

	got, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCreated, got.Status)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Qty)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("6.5")), got.Total.String())
}

func TestCreateWithNextIDRollsBackCounterWhenInsertFails(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewOrderRepository(db)
	counters := repositories.NewCounterRepository(db)
	ctx := context.Background()

	// An order already occupies the id the allocator will hand out next,
	// so the insert violates the primary key.
	squatter := newOrder("", 1)
	squatter.ID = "20251112-0001"
	require.NoError(t, db.Create(squatter).Error)

	order := newOrder("", 1)
	err := repo.CreateWithNextID(ctx, "20251112", order)
	require.Error(t, err)
	assert.Empty(t, order.ID)

	current, err := counters.Current(ctx, "20251112")
	require.NoError(t, err)
	assert.Equal(t, int64(0), current)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateWithNextIDConcurrent(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewOrderRepository(db)
	ctx := context.Background()

	const n = 30
	ids := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			o := newOrder("", 1)
			if assert.NoError(t, repo.CreateWithNextID(ctx, "20251112", o)) {
				ids[i] = o.ID
			}
		}(i)
	}
	wg.Wait()

	unique := map[string]bool{}
	for _, id := range ids {
		unique[id] = true
	}
	assert.Len(t, unique, n)
	assert.True(t, unique["20251112-0001"])
	assert.True(t, unique["20251112-0030"])
}

func TestFindByIDNotFound(t *testing.T) {
	repo := repositories.NewOrderRepository(testdb.New(t))

	_, err := repo.FindByID(context.Background(), "20251112-0001")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestListFiltersByCustomer(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", newOrder("alice", 1)))
	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", newOrder("bob", 1)))
	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", newOrder("alice", 2)))

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alice, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	for _, o := range alice {
		assert.Equal(t, "alice", *o.CustomerID)
	}

	nobody, err := repo.List(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, nobody)
	assert.Empty(t, nobody)
}

func TestUpdateWritesMutableFields(t *testing.T) {
	db := testdb.New(t)
	repo := repositories.NewOrderRepository(db)
	ctx := context.Background()

	order := newOrder("alice", 1)
	require.NoError(t, repo.CreateWithNextID(ctx, "20251112", order))
	created := order.CreatedAt

	time.Sleep(5 * time.Millisecond)
	order.Status = "READY"
	order.PaymentMethod = "card"
	order.SetItems([]models.LineItem{{ID: "m2", Name: "Burrito", Price: decimal.RequireFromString("8"), Qty: 2}})
	require.NoError(t, repo.Update(ctx, order))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "READY", got.Status)
	assert.Equal(t, "card", got.PaymentMethod)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(16)))
	assert.Equal(t, "Burrito", got.Items[0].Name)
	assert.WithinDuration(t, created, got.CreatedAt, time.Second)
	assert.True(t, got.UpdatedAt.After(created) || got.UpdatedAt.Equal(created))
}

func TestUpdateMissingOrder(t *testing.T) {
	repo := repositories.NewOrderRepository(testdb.New(t))

	ghost := newOrder("", 1)
	ghost.ID = "20251112-0042"
	assert.ErrorIs(t, repo.Update(context.Background(), ghost), repositories.ErrOrderNotFound)
}
