package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockNotifier(t *testing.T) (*KafkaNotifier, *mocks.SyncProducer) {
	t.Helper()

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, config)

	return NewKafkaNotifierWithProducer(producer, "order-events", slog.Default()), producer
}

func TestPublish_EncodesEventAsJSON(t *testing.T) {
	notifier, producer := newMockNotifier(t)
	defer func() { require.NoError(t, notifier.Close()) }()

	orderID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var message orderEventMessage
		if err := json.Unmarshal(value, &message); err != nil {
			return err
		}

		assert.Equal(t, "assigned", message.Kind)
		assert.Equal(t, orderID.String(), message.OrderID)
		assert.Equal(t, "12345678", message.OrderNumber)
		require.NotNil(t, message.DriverID)
		assert.Equal(t, driverID.String(), *message.DriverID)
		return nil
	})

	err := notifier.Publish(context.Background(), ports.OrderEvent{
		Kind:         ports.EventDriverAssigned,
		OrderID:      orderID,
		OrderNumber:  "12345678",
		CustomerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
		DriverID:     &driverID,
	})

	require.NoError(t, err)
}

func TestPublish_OmitsDriverWhenUnassigned(t *testing.T) {
	notifier, producer := newMockNotifier(t)
	defer func() { require.NoError(t, notifier.Close()) }()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var message orderEventMessage
		if err := json.Unmarshal(value, &message); err != nil {
			return err
		}

		assert.Equal(t, "new_order", message.Kind)
		assert.Nil(t, message.DriverID)
		return nil
	})

	err := notifier.Publish(context.Background(), ports.OrderEvent{
		Kind:         ports.EventNewOrder,
		OrderID:      kernel.NewUUID(),
		OrderNumber:  "87654321",
		CustomerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
	})

	require.NoError(t, err)
}

func TestPublish_BrokerFailure_ReturnsError(t *testing.T) {
	notifier, producer := newMockNotifier(t)
	defer func() { require.NoError(t, notifier.Close()) }()

	producer.ExpectSendMessageAndFail(errors.New("broker unreachable"))

	err := notifier.Publish(context.Background(), ports.OrderEvent{
		Kind:         ports.EventReadyForPickup,
		OrderID:      kernel.NewUUID(),
		OrderNumber:  "11112222",
		CustomerID:   kernel.NewUUID(),
		RestaurantID: kernel.NewUUID(),
	})

	require.Error(t, err)
}
