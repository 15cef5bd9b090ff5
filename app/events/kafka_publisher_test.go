package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodtruck-labs/foodtruck/app/events"
	"github.com/foodtruck-labs/foodtruck/app/models"
	"github.com/foodtruck-labs/foodtruck/pkg/event"
	"github.com/foodtruck-labs/foodtruck/pkg/reqid"
	"github.com/foodtruck-labs/foodtruck/pkg/workerpool"
)

func sampleOrder(id string) models.Order {
	o := models.Order{ID: id, PaymentMethod: "cash", Status: models.StatusCreated}
	o.SetItems([]models.LineItem{{ID: "taco", Name: "Taco", Price: decimal.RequireFromString("3.25"), Qty: 2}})
	return o
}

func TestPublisherSendsOrderEvents(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var got struct {
			Event string `json:"event"`
			Order struct {
				ID    string  `json:"id"`
				Total float64 `json:"total"`
			} `json:"order"`
		}
		if err := json.Unmarshal(value, &got); err != nil {
			return err
		}
		if got.Event != events.OrderCreated || got.Order.ID != "20251112-0001" || got.Order.Total != 6.5 {
			return fmt.Errorf("unexpected message %s", value)
		}
		return nil
	})
	producer.ExpectSendMessageAndSucceed()

	pub := events.NewKafkaPublisherWithProducer(producer, "orders", workerpool.New(1, 8))
	d := event.NewDispatcher()
	pub.Subscribe(d)

	ctx := reqid.WithValue(context.Background(), "req-1")
	d.Fire(ctx, events.OrderCreated, events.OrderEvent{Name: events.OrderCreated, Order: sampleOrder("20251112-0001")})
	d.Fire(ctx, events.OrderUpdated, events.OrderEvent{Name: events.OrderUpdated, Order: sampleOrder("20251112-0001")})

	require.NoError(t, pub.Close(context.Background()))
}

func TestPublisherSwallowsBrokerFailures(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := events.NewKafkaPublisherWithProducer(producer, "orders", workerpool.New(1, 8))
	d := event.NewDispatcher()
	pub.Subscribe(d)

	assert.NotPanics(t, func() {
		d.Fire(context.Background(), events.OrderCreated, events.OrderEvent{Name: events.OrderCreated, Order: sampleOrder("20251112-0002")})
		d.Fire(context.Background(), events.OrderCreated, "not an order event")
	})

	require.NoError(t, pub.Close(context.Background()))
}
