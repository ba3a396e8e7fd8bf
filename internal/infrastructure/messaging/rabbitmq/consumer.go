package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/courseplatform/recommendation-service/internal/domain"
	"github.com/courseplatform/recommendation-service/internal/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// routing keys published by the rating service
var routingKeys = []string{"rating.created", "rating.updated"}

// EventProcessor handles a decoded rating event.
type EventProcessor interface {
	ProcessRatingEvent(ctx context.Context, ev domain.RatingEvent) error
}

// Consumer reads rating events from a topic exchange and hands them to the
// recommendation engine. It reconnects with a fixed backoff until the context
// is canceled.
type Consumer struct {
	url      string
	exchange string
	queue    string
	proc     EventProcessor
	backoff  time.Duration
}

func NewConsumer(url, exchange, queue string, proc EventProcessor, backoff time.Duration) *Consumer {
	if backoff <= 0 {
		backoff = time.Second
	}
	return &Consumer{
		url:      url,
		exchange: exchange,
		queue:    queue,
		proc:     proc,
		backoff:  backoff,
	}
}

// Run blocks until ctx is canceled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if err := c.connectAndConsume(ctx); err != nil {
			log.Error().Err(err).Dur("backoff", c.backoff).Msg("rating consumer disconnected, retrying")
		}
		select {
		case <-ctx.Done():
			log.Info().Msg("rating consumer stopped")
			return
		case <-time.After(c.backoff):
		}
	}
}

func (c *Consumer) connectAndConsume(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(c.exchange, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	q, err := ch.QueueDeclare(c.queue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	for _, key := range routingKeys {
		if err := ch.QueueBind(q.Name, key, c.exchange, false, nil); err != nil {
			return err
		}
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	log.Info().Str("queue", q.Name).Str("exchange", c.exchange).Msg("rating consumer started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return amqp.ErrClosed
			}
			if err := c.handleBody(ctx, msg.Body); err != nil {
				log.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("rating event rejected")
				// poison or failed message, do not requeue
				_ = msg.Nack(false, false)
			} else {
				_ = msg.Ack(false)
			}
		}
	}
}

// handleBody decodes and processes one message body. A decode or validation
// failure is terminal for the message; the caller must not requeue it.
func (c *Consumer) handleBody(ctx context.Context, body []byte) error {
	var ev domain.RatingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		metrics.RatingEventDiscarded()
		return err
	}
	if err := c.proc.ProcessRatingEvent(ctx, ev); err != nil {
		if domain.IsValidation(err) {
			metrics.RatingEventDiscarded()
		} else {
			metrics.RatingEventFailed()
		}
		return err
	}
	metrics.RatingEventProcessed()
	return nil
}
