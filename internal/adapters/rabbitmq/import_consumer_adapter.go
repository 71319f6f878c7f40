package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inbackru/v35-sub000/internal/core/domain"
	"github.com/inbackru/v35-sub000/internal/core/usecase"
	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_consumer"
)

// ImportConsumerAdapter – входящий адаптер: слушает очередь импорта
// и передает каждую задачу сценарию импорта объявления.
type ImportConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  *usecase.ImportListingUseCase
}

// NewImportConsumerAdapter создает адаптер.
func NewImportConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase *usecase.ImportListingUseCase,
) (*ImportConsumerAdapter, error) {
	adapter := &ImportConsumerAdapter{useCase: useCase}

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.messageHandler)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for import tasks: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func (a *ImportConsumerAdapter) messageHandler(d amqp.Delivery) (ack bool, requeueOnError bool, err error) {
	var task domain.ImportTask
	if err := json.Unmarshal(d.Body, &task); err != nil {
		// Битое сообщение нет смысла возвращать в очередь.
		log.Printf("ImportConsumer: Error unmarshalling import task: %v. NACK (no requeue).\n", err)
		return false, false, fmt.Errorf("unmarshal error: %w", err)
	}

	if err := a.useCase.Execute(context.Background(), task); err != nil {
		if d.Redelivered {
			// Вторая неудача подряд – похоже на отравленное сообщение.
			log.Printf("ImportConsumer: Redelivered task for listing %d failed again: %v. Discarding.\n", task.Listing.ID, err)
			return false, false, err
		}
		log.Printf("ImportConsumer: Import failed for listing %d: %v. Requeueing.\n", task.Listing.ID, err)
		return false, true, err
	}

	return true, false, nil
}

// Start реализует EventListenerPort.
func (a *ImportConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort.
func (a *ImportConsumerAdapter) Close() error {
	return a.consumer.Close()
}
