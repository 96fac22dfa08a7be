package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Bus carries domain events between producers (handlers) and the
// notification dispatcher.
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Consume(ctx context.Context, handler func(event Event) error) error
	Close() error
}

type RabbitBus struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

type RabbitConfig struct {
	URL       string
	QueueName string
}

func NewRabbitBus(config RabbitConfig) (*RabbitBus, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	q, err := channel.QueueDeclare(
		config.QueueName, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &RabbitBus{
		conn:    conn,
		channel: channel,
		queue:   q,
	}, nil
}

func (b *RabbitBus) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = b.channel.PublishWithContext(
		ctx,
		"",           // exchange
		b.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    event.ID,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Consume delivers events to handler until ctx is cancelled. A handler
// error nacks the message back onto the queue for redelivery.
func (b *RabbitBus) Consume(ctx context.Context, handler func(event Event) error) error {
	deliveries, err := b.channel.Consume(
		b.queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var event Event

			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				logrus.WithError(err).Warn("Discarding malformed event")
				delivery.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				logrus.WithError(err).WithField("event_id", event.ID).Error("Event handler failed, requeueing")
				delivery.Nack(false, true)
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (b *RabbitBus) Close() error {
	if err := b.channel.Close(); err != nil {
		return err
	}
	return b.conn.Close()
}
