package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one confirmation. A returned error rejects the message
// without requeueing it.
type Handler func(ctx context.Context, e ReservationConfirmed) error

// ConsumeOptions tunes [Consume].
type ConsumeOptions struct {
	Logger     *log.Logger
	Prefetch   int           // unacknowledged messages in flight (default 50)
	MinBackoff time.Duration // first reconnect delay (default 1s)
	MaxBackoff time.Duration // reconnect delay cap (default 30s)
}

func (o *ConsumeOptions) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Prefetch <= 0 {
		o.Prefetch = 50
	}
	if o.MinBackoff <= 0 {
		o.MinBackoff = time.Second
	}
	if o.MaxBackoff < o.MinBackoff {
		o.MaxBackoff = 30 * time.Second
	}
}

// Consume reads confirmations from [Queue] until ctx is done, reconnecting
// with exponential backoff whenever the broker is unreachable or drops the
// connection. It returns ctx.Err().
func Consume(ctx context.Context, url string, handler Handler, opts ConsumeOptions) error {
	if url == "" {
		url = DefaultURL
	}
	opts.setDefaults()
	logger := opts.Logger

	backoff := opts.MinBackoff
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("broker unreachable", "err", err, "retry", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = nextBackoff(backoff, opts.MaxBackoff)
			continue
		}
		backoff = opts.MinBackoff

		err = consumeLoop(ctx, conn, handler, opts)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("consumer stopped, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, handler Handler, opts ConsumeOptions) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(opts.Prefetch, 0, false); err != nil {
		opts.Logger.Warn("set prefetch failed", "err", err)
	}
	if _, err := declare(ch); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	opts.Logger.Info("waiting for confirmations", "queue", Queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := deliver(ctx, d, handler); err != nil {
				opts.Logger.Error("rejected message", "err", err)
			}
		}
	}
}

// deliver decodes d, runs handler and settles the delivery.
func deliver(ctx context.Context, d amqp.Delivery, handler Handler) error {
	e, err := decode(d.Body)
	if err == nil {
		err = handler(ctx, e)
	}
	if err != nil {
		_ = d.Nack(false, false)
		return err
	}
	return d.Ack(false)
}

func nextBackoff(cur, limit time.Duration) time.Duration {
	if next := cur * 2; next < limit {
		return next
	}
	return limit
}

// sleep waits for d or until ctx is done, reporting whether the full delay
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
