package components

import (
	"log/slog"

	"hotel-booking-core/internal/infra/cache"
	"hotel-booking-core/internal/infra/memstore"
	"hotel-booking-core/internal/infra/readstore"
	"hotel-booking-core/internal/infra/uow"
	"hotel-booking-core/internal/pkg/config"
	"hotel-booking-core/internal/usecase/queries"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
		fx.Annotate(
			NewCachedBookingReadStore,
			fx.ParamTags(`name:"bookingSource"`),
		),
	),
)

// Stores is the write side and the uncached read side of the selected driver.
type Stores struct {
	fx.Out

	UoW      shared.UnitOfWork
	Bookings queries.BookingReadStore `name:"bookingSource"`
	Refunds  queries.RefundReadStore
}

func NewStores(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) Stores {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		s := memstore.New(cfg.Store.Timeout)
		return Stores{
			UoW:      s,
			Bookings: memstore.NewBookingReadStore(s),
			Refunds:  memstore.NewRefundReadStore(s),
		}
	}

	return Stores{
		UoW:      uow.NewPostgresUoW(pool, cfg.Store.Timeout, logger),
		Bookings: readstore.NewBookingReadStore(pool, cfg.Store.Timeout, logger),
		Refunds:  readstore.NewRefundReadStore(pool, cfg.Store.Timeout, logger),
	}
}

func NewCachedBookingReadStore(source queries.BookingReadStore, rdb *redis.Client, cfg config.Config, logger *slog.Logger) queries.BookingReadStore {
	if rdb == nil {
		return source
	}
	return cache.NewBookingReadStore(source, rdb, cfg.Redis.BookingCacheTTL, logger)
}
