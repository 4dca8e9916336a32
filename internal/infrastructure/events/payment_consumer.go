package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

// PaymentEventType labels an inbound payment event.
type PaymentEventType string

const (
	PaymentEventCompleted PaymentEventType = "payment.completed"
	PaymentEventFailed    PaymentEventType = "payment.failed"
)

// PaymentEvent is the envelope the payment processor writes to its topic.
type PaymentEvent struct {
	ID        string           `json:"id"`
	Type      PaymentEventType `json:"type"`
	PaymentID string           `json:"payment_id"`
	OrderID   string           `json:"order_id"`
	Timestamp time.Time        `json:"timestamp"`
}

// PaymentConsumer consumes payment events and advances the matching order:
// a completed payment confirms it, a failed one cancels it.
type PaymentConsumer struct {
	reader *kafka.Reader
	orders ports.OrderService
	log    zerolog.Logger
}

func NewPaymentConsumer(cfg Config, orders ports.OrderService, log zerolog.Logger) *PaymentConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.PaymentsTopic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return &PaymentConsumer{reader: reader, orders: orders, log: log}
}

// Start reads until ctx is cancelled.
func (c *PaymentConsumer) Start(ctx context.Context) error {
	c.log.Info().Msg("payment consumer started")
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error().Err(err).Msg("failed to read payment event")
			continue
		}
		c.handleMessage(ctx, msg)
	}
}

func (c *PaymentConsumer) Close() error {
	return c.reader.Close()
}

func (c *PaymentConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var event PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.log.Error().Err(err).Msg("failed to unmarshal payment event")
		return
	}

	switch event.Type {
	case PaymentEventCompleted:
		if _, err := c.orders.UpdateStatus(ctx, event.OrderID, domain.StatusConfirmed); err != nil {
			c.log.Error().Err(err).
				Str("order_id", event.OrderID).
				Msg("failed to confirm order after payment")
		}
	case PaymentEventFailed:
		_, err := c.orders.Cancel(ctx, ports.GetOrderInput{OrderID: event.OrderID, Role: domain.RoleAdmin})
		if err != nil {
			c.log.Error().Err(err).
				Str("order_id", event.OrderID).
				Msg("failed to cancel order after payment failure")
		}
	default:
		c.log.Debug().Str("type", string(event.Type)).Msg("ignoring unknown payment event")
	}
}
