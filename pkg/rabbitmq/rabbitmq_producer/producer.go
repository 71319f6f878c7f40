package rabbitmq_producer

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inbackru/v35-sub000/pkg/rabbitmq/rabbitmq_common"
)

// PublisherConfig – конфигурация производителя.
type PublisherConfig struct {
	rabbitmq_common.Config
	ExchangeName    string
	ExchangeType    string // direct, fanout, topic
	DurableExchange bool

	// Объявлять ли обменник при старте. Если false, производитель
	// полагается на то, что обменник уже существует.
	DeclareExchangeIfMissing bool
}

// Publisher публикует сообщения в один обменник.
type Publisher struct {
	config     PublisherConfig
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewPublisher подключается к RabbitMQ и при необходимости объявляет
// обменник.
func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid base config: %w", err)
	}
	if cfg.DeclareExchangeIfMissing && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("producer: exchange name and type are required to declare an exchange")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("producer: failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("producer: failed to open a channel: %w", err)
	}

	if cfg.DeclareExchangeIfMissing {
		log.Printf("Producer: Declaring exchange '%s' (type: %s, durable: %v)\n",
			cfg.ExchangeName, cfg.ExchangeType, cfg.DurableExchange)
		err = ch.ExchangeDeclare(
			cfg.ExchangeName,
			cfg.ExchangeType,
			cfg.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", cfg.ExchangeName, err)
		}
	}

	log.Println("Producer: Successfully connected and channel opened.")
	return &Publisher{config: cfg, connection: conn, channel: ch}, nil
}

// Publish публикует сообщение с указанным ключом маршрутизации.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.channel == nil || p.connection == nil || p.connection.IsClosed() {
		return fmt.Errorf("producer: not connected or channel/connection is closed")
	}

	err := p.channel.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	var firstErr error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			firstErr = err
		}
		p.channel = nil
	}
	if p.connection != nil {
		if err := p.connection.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.connection = nil
	}
	return firstErr
}
