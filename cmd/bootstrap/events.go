package bootstrap

import (
	"context"
	"log/slog"

	"hotel-booking-core/internal/infra/cache"
	"hotel-booking-core/internal/infra/events"
	"hotel-booking-core/internal/pkg/config"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewMessagePublisher,
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(shared.EventPublisher)),
		),
		NewCacheInvalidator,
	),
)

func NewMessagePublisher(lc fx.Lifecycle, rdb *redis.Client, logger *slog.Logger) (message.Publisher, error) {
	adapter := events.NewLoggerAdapter(logger)

	var pub message.Publisher
	if rdb != nil {
		p, err := events.NewRedisPublisher(rdb, adapter)
		if err != nil {
			return nil, err
		}
		pub = p
	} else {
		pub = events.NewInProcessPubSub(adapter)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})

	return pub, nil
}

func NewEventPublisher(pub message.Publisher, cfg config.Config) *events.Publisher {
	return events.NewPublisher(pub, cfg.Events.TopicPrefix)
}

func NewCacheInvalidator(rdb *redis.Client) shared.BookingCacheInvalidator {
	if rdb == nil {
		return shared.NopCache{}
	}
	return cache.NewInvalidator(rdb)
}
