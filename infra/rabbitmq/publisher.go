// Package rabbitmq publishes comment lifecycle events to a topic exchange.
package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"guestbook/pkg/events"
)

// Publisher implements the events.Publisher interface.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	service string
}

// NewPublisher connects to RabbitMQ with retry and enables publisher
// confirms, so a successful Publish means the broker accepted the message.
func NewPublisher(url, service string) (*Publisher, error) {
	var conn *amqp.Connection
	var err error

	for attempt := 1; attempt <= 5; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		zap.L().Warn("Failed to connect to RabbitMQ, retrying...",
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(time.Second * time.Duration(attempt))
	}

	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ after retries: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("enable publisher confirms: %w", err)
	}

	if err := declareExchange(channel, events.CommentExchange); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	zap.L().Info("RabbitMQ publisher connected",
		zap.String("exchange", events.CommentExchange))

	return &Publisher{
		conn:    conn,
		channel: channel,
		service: service,
	}, nil
}

func declareExchange(channel *amqp.Channel, exchange string) error {
	return channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
}

// Publish sends the event to the exchange and waits for the broker
// confirmation before returning.
func (p *Publisher) Publish(ctx context.Context, exchange string, event *events.Event, headers events.Headers) error {
	body, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Headers: amqp.Table{
			"x-trace-id":       headers.TraceID,
			"x-correlation-id": headers.CorrelationID,
			"x-service":        p.service,
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(
		publishCtx,
		exchange,
		event.GetRoutingKey(),
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	acked, err := confirm.WaitContext(publishCtx)
	if err != nil {
		return fmt.Errorf("publish confirmation: %w", err)
	}
	if !acked {
		return fmt.Errorf("message was not acknowledged by broker")
	}

	zap.L().Info("Event published",
		zap.String("exchange", exchange),
		zap.String("routingKey", event.GetRoutingKey()),
		zap.String("traceId", headers.TraceID),
	)

	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			zap.L().Error("Failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			zap.L().Error("Failed to close connection", zap.Error(err))
			return err
		}
	}
	return nil
}
