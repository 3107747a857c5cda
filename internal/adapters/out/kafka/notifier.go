// Package kafka publishes order lifecycle events to a Kafka topic. Command
// handlers commit first and publish after, so the broker sits outside the
// transaction and an outage never fails an order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"

	"github.com/IBM/sarama"
)

// KafkaNotifier implements ports.Notifier on top of a synchronous Kafka
// producer. Events are keyed by order id so one order's events stay in
// partition order.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// orderEventMessage is the wire shape of an order lifecycle event.
type orderEventMessage struct {
	Kind         string  `json:"kind"`
	OrderID      string  `json:"order_id"`
	OrderNumber  string  `json:"order_number"`
	CustomerID   string  `json:"customer_id"`
	RestaurantID string  `json:"restaurant_id"`
	DriverID     *string `json:"driver_id,omitempty"`
}

// NewKafkaNotifier connects a synchronous producer to the given brokers.
func NewKafkaNotifier(brokers []string, topic string, logger *slog.Logger) (*KafkaNotifier, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true // Must be true for SyncProducer

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewKafkaNotifierWithProducer(producer, topic, logger), nil
}

// NewKafkaNotifierWithProducer wraps an existing producer. Tests use it with
// the sarama mock producer.
func NewKafkaNotifierWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_notifier"),
	}
}

// Publish sends the event to the configured topic.
func (n *KafkaNotifier) Publish(ctx context.Context, event ports.OrderEvent) error {
	message := orderEventMessage{
		Kind:         string(event.Kind),
		OrderID:      event.OrderID.String(),
		OrderNumber:  event.OrderNumber,
		CustomerID:   event.CustomerID.String(),
		RestaurantID: event.RestaurantID.String(),
	}
	if event.DriverID != nil {
		driverID := event.DriverID.String()
		message.DriverID = &driverID
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(message.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish order event",
			"kind", message.Kind, "order_id", message.OrderID, "error", err)
		return err
	}

	return nil
}

// Close shuts the underlying producer down.
func (n *KafkaNotifier) Close() error {
	return n.producer.Close()
}
