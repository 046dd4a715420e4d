package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends confirmations to the broker. The connection is opened on
// first use and reopened after the broker drops it. It is safe for
// concurrent use.
type Publisher struct {
	url    string
	logger *log.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher creates a publisher for the broker at url. An empty url means
// [DefaultURL]; a nil logger means log.Default().
func NewPublisher(url string, logger *log.Logger) *Publisher {
	if url == "" {
		url = DefaultURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{url: url, logger: logger}
}

// Publish sends e to [Queue] as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, e ReservationConfirmed) error {
	body, err := encode(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", Queue, false, false, pub); err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}
	p.logger.Debug("published confirmation", "queue", Queue, "stall", e.StallID, "reservation", e.ReservationID)
	return nil
}

// channel returns an open channel with the queue declared. Callers hold mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := declare(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// reset drops the current connection. Callers hold mu.
func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close closes the connection, if any.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// declare ensures the durable queue exists.
func declare(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(Queue, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("declare queue: %w", err)
	}
	return q, nil
}
