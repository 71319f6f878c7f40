package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_producer"
)

// ImportQueueAdapter реализует ImportQueuePort поверх RabbitMQ.
type ImportQueueAdapter struct {
	producer   *rabbitmq_producer.Publisher
	routingKey string
}

// NewImportQueueAdapter создает адаптер очереди импорта.
func NewImportQueueAdapter(producer *rabbitmq_producer.Publisher, routingKey string) (*ImportQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ImportQueueAdapter{producer: producer, routingKey: routingKey}, nil
}

// Enqueue публикует задачу импорта в очередь.
func (a *ImportQueueAdapter) Enqueue(ctx context.Context, task domain.ImportTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal import task for listing %d: %w", task.Listing.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // переживает рестарт брокера
		Timestamp:    time.Now(),
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to publish import task for listing %d: %w", task.Listing.ID, err)
	}

	log.Printf("ImportQueue: Published listing %d (feed '%s') to routing key '%s'\n", task.Listing.ID, task.Feed, a.routingKey)
	return nil
}
