package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Payload is the wire form of a published event.
type Payload struct {
	Topic       string         `json:"topic"`
	AggregateID uuid.UUID      `json:"aggregateId"`
	ActorID     uuid.UUID      `json:"actorId"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Data        map[string]any `json:"data,omitempty"`
}

// Publisher sends lifecycle events through a watermill publisher. Topics
// are namespaced with a configurable prefix.
type Publisher struct {
	pub    message.Publisher
	prefix string
}

func NewPublisher(pub message.Publisher, prefix string) *Publisher {
	return &Publisher{pub: pub, prefix: prefix}
}

func (p *Publisher) Publish(ctx context.Context, events ...shared.Event) error {
	for _, e := range events {
		payload, err := json.Marshal(Payload{
			Topic:       e.Topic,
			AggregateID: e.AggregateID,
			ActorID:     e.ActorID,
			OccurredAt:  e.OccurredAt,
			Data:        e.Data,
		})
		if err != nil {
			return errs.Wrapf(err, "marshal %s event", e.Topic)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("aggregate_id", e.AggregateID.String())
		msg.SetContext(ctx)

		if err := p.pub.Publish(p.Topic(e.Topic), msg); err != nil {
			return errs.Wrapf(err, "publish %s event", e.Topic)
		}
	}
	return nil
}

func (p *Publisher) Topic(name string) string {
	return p.prefix + name
}

func (p *Publisher) Close() error {
	return p.pub.Close()
}

func NewRedisPublisher(rdb *redis.Client, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
}

// NewInProcessPubSub is used when no Redis is configured. Messages are
// dropped unless something subscribes.
func NewInProcessPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)
}

type slogAdapter struct {
	logger *slog.Logger
}

// NewLoggerAdapter routes watermill's logging into slog.
func NewLoggerAdapter(logger *slog.Logger) watermill.LoggerAdapter {
	return &slogAdapter{logger: logger}
}

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(attrs(fields), "error", err)...)
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, attrs(fields)...)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, attrs(fields)...)
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{logger: a.logger.With(attrs(fields)...)}
}

func attrs(fields watermill.LogFields) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}
