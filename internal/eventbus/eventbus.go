package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
)

// Topics for stake lifecycle events.
const (
	TopicStakeReserved  = "stake.reserved"
	TopicStakeConfirmed = "stake.payment_confirmed"
	TopicStakeCancelled = "stake.reservation_cancelled"
)

// EventBus publishes domain events and exposes a subscriber for in-process
// consumers such as the audit log.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Subscriber() message.Subscriber
	Close() error
}

// Bus fans events out to an in-process gochannel pub/sub and, when a NATS
// connection is configured, mirrors them to the same subject on NATS so
// external consumers can follow along.
type Bus struct {
	pubsub *gochannel.GoChannel
	nc     *nats.Conn
	logger *slog.Logger
}

// New creates an event bus. natsURL may be empty; the bus then stays purely
// in-process.
func New(natsURL string, logger *slog.Logger) (*Bus, error) {
	// Buffered so publishers never block on slow in-process consumers.
	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NewSlogLogger(logger))

	var nc *nats.Conn
	if natsURL != "" {
		conn, err := nats.Connect(natsURL, nats.Name("stake-reservations"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS at %s: %w", natsURL, err)
		}
		nc = conn
		logger.Info("Connected to NATS", slog.String("url", natsURL))
	}

	return &Bus{pubsub: pubsub, nc: nc, logger: logger}, nil
}

// Publish marshals the payload to JSON and publishes it on the given topic.
// The correlation ID is taken from the context when present, otherwise a new
// one is generated.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for topic %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	correlationID := CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	middleware.SetCorrelationID(correlationID, msg)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}

	if b.nc != nil {
		if err := b.nc.Publish(topic, data); err != nil {
			// Local delivery already succeeded; the mirror is best effort.
			b.logger.ErrorContext(ctx, "Failed to mirror event to NATS",
				slog.String("topic", topic),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// Subscriber returns the in-process subscriber side of the bus.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubsub
}

// Close shuts down the pub/sub and drains the NATS connection.
func (b *Bus) Close() error {
	if b.nc != nil {
		if err := b.nc.Drain(); err != nil {
			b.logger.Error("Failed to drain NATS connection", slog.Any("error", err))
		}
	}
	return b.pubsub.Close()
}

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context for publishes made
// downstream of a single request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext returns the correlation ID from the context, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
