package workerpool_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/pkg/workerpool"
)

func TestPoolRunsAllTasks(t *testing.T) {
	pool := workerpool.New(4, 100)

	var count atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, pool.Submit(func() { count.Add(1) }))
	}

	require.NoError(t, pool.Shutdown(context.Background()))
	assert.Equal(t, int64(100), count.Load(), "shutdown drains the queue")
}

func TestPoolFull(t *testing.T) {
	pool := workerpool.New(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.Submit(func() {
		close(started)
		<-release
	}))
	<-started
	require.NoError(t, pool.Submit(func() {}))

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)

	close(release)
	require.NoError(t, pool.Shutdown(context.Background()))
}

func TestPoolClosed(t *testing.T) {
	pool := workerpool.New(2, 2)
	require.NoError(t, pool.Shutdown(context.Background()))
	require.NoError(t, pool.Shutdown(context.Background()))

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPoolSurvivesPanic(t *testing.T) {
	pool := workerpool.New(1, 4)
	defer pool.Shutdown(context.Background()) //nolint:errcheck

	var wg sync.WaitGroup
	wg.Add(1)
	require.NoError(t, pool.Submit(func() { panic("boom") }))
	require.NoError(t, pool.Submit(wg.Done))

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panic")
	}
}

func TestShutdownHonoursContext(t *testing.T) {
	pool := workerpool.New(1, 1)
	release := make(chan struct{})
	defer close(release)
	require.NoError(t, pool.Submit(func() { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Shutdown(ctx), context.DeadlineExceeded)
}
