package event_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foodtruck-labs/foodtruck/pkg/event"
)

func TestFireCallsListenersInOrder(t *testing.T) {
	d := event.NewDispatcher()
	var got []string
	d.Listen("order.created", func(_ context.Context, p any) { got = append(got, "a:"+p.(string)) })
	d.Listen("order.created", func(_ context.Context, p any) { got = append(got, "b:"+p.(string)) })
	d.Listen("order.updated", func(_ context.Context, _ any) { got = append(got, "wrong") })

	n := d.Fire(context.Background(), "order.created", "x")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestFlushRemovesListeners(t *testing.T) {
	d := event.NewDispatcher()
	d.Listen("order.created", func(context.Context, any) { t.Fatal("flushed listener called") })
	d.Flush()

	assert.Zero(t, d.Fire(context.Background(), "order.created", nil))
}
