package commander

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyMessage is returned when there is nothing to publish.
var ErrEmptyMessage = errors.New("empty command message")

//go:generate mockery --name RabbitMQPublisher --filename rabbitmqpublisher.go

// RabbitMQPublisher is RabbitMQ messages publisher.
type RabbitMQPublisher interface {
	Publish(ctx context.Context, routingKey string, message []byte) error
}

// RabbitMQSender delivers encoded commands to monitor workers bound to the routing key.
type RabbitMQSender struct {
	publisher  RabbitMQPublisher
	routingKey string
}

// NewRabbitMQSender returns new RabbitMQSender.
func NewRabbitMQSender(publisher RabbitMQPublisher, routingKey string) RabbitMQSender {
	return RabbitMQSender{
		publisher:  publisher,
		routingKey: routingKey,
	}
}

// Send publishes encoded command.
func (s RabbitMQSender) Send(ctx context.Context, msg []byte) error {
	if len(msg) == 0 {
		return ErrEmptyMessage
	}

	if err := s.publisher.Publish(ctx, s.routingKey, msg); err != nil {
		return fmt.Errorf("can't publish command to %q: %w", s.routingKey, err)
	}

	return nil
}
