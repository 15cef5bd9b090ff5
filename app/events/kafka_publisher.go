package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/foodtruck-labs/foodtruck/pkg/event"
	"github.com/foodtruck-labs/foodtruck/pkg/logger"
	"github.com/foodtruck-labs/foodtruck/pkg/metrics"
	"github.com/foodtruck-labs/foodtruck/pkg/reqid"
	"github.com/foodtruck-labs/foodtruck/pkg/workerpool"
)

// KafkaPublisher forwards order events to a Kafka topic. Sends happen on a
// small worker pool after the HTTP response is decided; a failed or dropped
// send is logged and counted, never reported to the caller.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	pool     *workerpool.Pool
}

// NewKafkaPublisher connects a synchronous producer to brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "foodtruck-orders"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("events: kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic, workerpool.New(2, 256)), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, pool *workerpool.Pool) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, pool: pool}
}

// Subscribe listens for every order event on d.
func (k *KafkaPublisher) Subscribe(d *event.Dispatcher) {
	d.Listen(OrderCreated, k.enqueue)
	d.Listen(OrderUpdated, k.enqueue)
}

func (k *KafkaPublisher) enqueue(ctx context.Context, payload any) {
	ev, ok := payload.(OrderEvent)
	if !ok {
		logger.WithCtx(ctx).Warn("events: unexpected payload", "type", fmt.Sprintf("%T", payload))
		return
	}
	requestID := reqid.FromCtx(ctx)

	err := k.pool.Submit(func() {
		if err := k.publish(ev, requestID); err != nil {
			metrics.EventsPublished.WithLabelValues(ev.Name, "failed").Inc()
			logger.Error("events: publish failed",
				"event", ev.Name, "order_id", ev.Order.ID, "request_id", requestID, "error", err)
			return
		}
		metrics.EventsPublished.WithLabelValues(ev.Name, "ok").Inc()
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues(ev.Name, "dropped").Inc()
		logger.WithCtx(ctx).Warn("events: publish dropped", "event", ev.Name, "order_id", ev.Order.ID, "error", err)
	}
}

// publish writes ev keyed by order id, so all events of one order land on
// the same partition in order.
func (k *KafkaPublisher) publish(ev OrderEvent, requestID string) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(ev.Order.ID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(ev.Name)},
		},
	}
	if requestID != "" {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{Key: []byte(reqid.Header), Value: []byte(requestID)})
	}

	_, _, err = k.producer.SendMessage(msg)
	return err
}

// Close drains queued events, then closes the producer.
func (k *KafkaPublisher) Close(ctx context.Context) error {
	poolErr := k.pool.Shutdown(ctx)
	return errors.Join(poolErr, k.producer.Close())
}
