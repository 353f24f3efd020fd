package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"inventory/internal/models"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *logrus.Logger
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
	Log   *logrus.Logger
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// product event queue.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	if cfg.Queue == "" {
		cfg.Queue = "product_events"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", cfg.Queue, err)
	}

	cfg.Log.WithField("queue", cfg.Queue).Info("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		log:     cfg.Log,
	}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	return ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishProductEvent publishes a persistent JSON message to the product
// event queue through the default exchange.
func (c *Client) PublishProductEvent(_ context.Context, event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key is the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"event":      event.Type,
		"product_id": event.ProductID,
	}).Debug("product event sent")
	return nil
}

// ConsumeProductEvents registers a consumer on the product event queue and
// dispatches every delivery to handler in a background goroutine. A nil
// handler result acks the message; an error nacks it without requeueing, so
// a poison message cannot loop.
func (c *Client) ConsumeProductEvents(handler func(event models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
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

	go func() {
		for msg := range msgs {
			if err := Dispatch(msg.Body, handler); err != nil {
				c.log.WithError(err).WithField("delivery_tag", msg.DeliveryTag).Warn("failed to process product event")
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.log.WithError(nackErr).Warn("failed to nack message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.WithError(ackErr).Warn("failed to ack message")
			}
		}
	}()

	return nil
}

// EncodeEvent serializes an event into a message body.
func EncodeEvent(event models.ProductEvent) ([]byte, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product event: %w", err)
	}
	return body, nil
}

// Dispatch decodes a message body and hands the event to handler.
func Dispatch(body []byte, handler func(event models.ProductEvent) error) error {
	var event models.ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode product event: %w", err)
	}
	if event.Type == "" {
		return fmt.Errorf("product event has no type")
	}
	return handler(event)
}

// AuditHandler returns a handler that logs every product event it receives.
func AuditHandler(log *logrus.Logger) func(event models.ProductEvent) error {
	return func(event models.ProductEvent) error {
		log.WithFields(logrus.Fields{
			"event":       event.Type,
			"product_id":  event.ProductID,
			"columns":     event.Columns,
			"occurred_at": event.OccurredAt,
		}).Info("product event")
		return nil
	}
}
