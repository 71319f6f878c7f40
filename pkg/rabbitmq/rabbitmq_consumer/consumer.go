package rabbitmq_consumer

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_common"
)

// MessageHandler – обработчик полученного сообщения. Возвращает,
// подтверждать ли сообщение и возвращать ли его в очередь при ошибке.
type MessageHandler func(delivery amqp.Delivery) (ack bool, requeueOnError bool, err error)

// ConsumerConfig – конфигурация потребителя.
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName    string
	DeclareQueue bool
	DurableQueue bool

	// Привязка очереди к обменнику; пустое имя обменника – без привязки.
	ExchangeNameForBind string
	RoutingKeyForBind   string

	PrefetchCount int
	ConsumerTag   string
}

// Consumer читает одну очередь и передает сообщения обработчику.
type Consumer struct {
	config     ConsumerConfig
	handler    MessageHandler
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewConsumer подключается к RabbitMQ и настраивает очередь.
func NewConsumer(cfg ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return nil, fmt.Errorf("consumer: queue name is required if DeclareQueue is false")
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}

	c := &Consumer{config: cfg, handler: handler}
	if err := c.connectAndSetup(); err != nil {
		return nil, fmt.Errorf("consumer: initial connection and setup failed: %w", err)
	}
	return c, nil
}

func (c *Consumer) connectAndSetup() error {
	conn, err := amqp.Dial(c.config.URL)
	if err != nil {
		return fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	c.connection = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	c.channel = ch

	if c.config.PrefetchCount > 0 {
		if err := ch.Qos(c.config.PrefetchCount, 0, false); err != nil {
			c.teardown()
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	if c.config.DeclareQueue {
		_, err := ch.QueueDeclare(
			c.config.QueueName,
			c.config.DurableQueue,
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			c.teardown()
			return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
		}
	}

	if c.config.ExchangeNameForBind != "" {
		err := ch.QueueBind(
			c.config.QueueName,
			c.config.RoutingKeyForBind,
			c.config.ExchangeNameForBind,
			false, // no-wait
			nil,
		)
		if err != nil {
			c.teardown()
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w",
				c.config.QueueName, c.config.ExchangeNameForBind, err)
		}
	}

	log.Printf("Consumer: Queue '%s' is ready.\n", c.config.QueueName)
	return nil
}

// StartConsuming блокирует до отмены контекста или закрытия канала
// доставки. Решение ack/nack принимает обработчик.
func (c *Consumer) StartConsuming(ctx context.Context) error {
	deliveries, err := c.channel.Consume(
		c.config.QueueName,
		c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming from '%s': %w", c.config.QueueName, err)
	}

	log.Printf("Consumer: Consuming from queue '%s' (tag: %s)...\n", c.config.QueueName, c.config.ConsumerTag)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Consumer: Context cancelled, stopping consumption from '%s'.\n", c.config.QueueName)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel for queue '%s' was closed", c.config.QueueName)
			}
			c.dispatch(d)
		}
	}
}

func (c *Consumer) dispatch(d amqp.Delivery) {
	ack, requeue, err := c.handler(d)
	if err != nil {
		log.Printf("Consumer: Handler error for delivery %d: %v (requeue: %v)\n", d.DeliveryTag, err, requeue)
	}
	if ack {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Printf("Consumer: Failed to ack delivery %d: %v\n", d.DeliveryTag, ackErr)
		}
		return
	}
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		log.Printf("Consumer: Failed to nack delivery %d: %v\n", d.DeliveryTag, nackErr)
	}
}

func (c *Consumer) teardown() {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.connection != nil {
		_ = c.connection.Close()
		c.connection = nil
	}
}

// Close закрывает канал и соединение потребителя.
func (c *Consumer) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
		c.channel = nil
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.connection = nil
	}
	return firstErr
}
