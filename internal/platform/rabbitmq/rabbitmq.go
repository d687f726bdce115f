package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message []byte) error

// Option is custom configuration of RabbitMQ.
type Option func(mq *RabbitMQ)

// RabbitMQ consumes and publishes amqp command messages.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	prefetch  int
	isRunning chan struct{}
}

// NewRabbitMQ returns new RabbitMQ publishing to and consuming from direct exchange.
// Exchange is declared when it doesn't exist.
func NewRabbitMQ(connection *amqp.Connection, exchange string, ops ...Option) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	mq := RabbitMQ{
		channel:  channel,
		exchange: exchange,
		prefetch: 1,
	}

	for _, op := range ops {
		op(&mq)
	}

	if err := channel.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("can't declare exchange %s: %w", exchange, err)
	}

	if err := channel.Qos(mq.prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("can't set prefetch count: %w", err)
	}

	return &mq, nil
}

// DeclareQueue declares durable queue bound to routing key of RabbitMQ's exchange.
func (mq *RabbitMQ) DeclareQueue(queue, routingKey string) error {
	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue %s: %w", queue, err)
	}

	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue %s to %s: %w", queue, routingKey, err)
	}

	return nil
}

// Publish publishes persistent message to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         message,
	}

	if err := mq.channel.PublishWithContext(ctx, mq.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("can't publish message to %s: %w", routingKey, err)
	}

	return nil
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
// Messages failed by handler are rejected without requeue.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.ConsumeWithContext(
		ctx,
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for {
		var (
			delivery amqp.Delivery
			ok       bool
		)

		select {
		case <-ctx.Done():
			return
		case delivery, ok = <-deliveries:
			if !ok {
				return
			}
		}

		if err := handler(ctx, delivery.Body); err != nil {
			_ = pushError(ctx, err, consumingErrors)
			if err := settle(ctx, "nack", func() error { return delivery.Nack(false, false) }, consumingErrors); err != nil {
				return
			}
			continue
		}

		if err := settle(ctx, "ack", func() error { return delivery.Ack(false) }, consumingErrors); err != nil {
			return
		}
	}
}

func settle(ctx context.Context, action string, fn func() error, consumingErrors chan error) error {
	if err := fn(); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't %s message: %w", action, err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

// Close closes RabbitMQ's channel.
func (mq *RabbitMQ) Close() error {
	return mq.channel.Close()
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}

// WithPrefetch sets number of unacknowledged deliveries consumer receives at once.
func WithPrefetch(n int) Option {
	return func(mq *RabbitMQ) {
		mq.prefetch = max(n, 1)
	}
}
