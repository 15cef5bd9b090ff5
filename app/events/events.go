// Package events names the order domain events and ships them to Kafka.
package events

import "github.com/foodtruck-labs/foodtruck/app/models"

const (
	OrderCreated = "order.created"
	OrderUpdated = "order.updated"
)

// OrderEvent is the payload fired for both event names and the JSON value
// written to the broker.
type OrderEvent struct {
	Name  string       `json:"event"`
	Order models.Order `json:"order"`
}
