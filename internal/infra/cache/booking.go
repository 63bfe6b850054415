package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	bookingKeyPrefix    = "booking:"
	generationKeyPrefix = "booking-gen:"

	// generationTTL outlives any read that observed the marker.
	generationTTL = 24 * time.Hour
)

// setIfGeneration stores the view only when no invalidation ran since the
// reader sampled the generation marker.
const setIfGeneration = `
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`

func BookingKey(id uuid.UUID) string {
	return bookingKeyPrefix + id.String()
}

func GenerationKey(id uuid.UUID) string {
	return generationKeyPrefix + id.String()
}

// BookingReadStore serves single-booking reads from Redis and falls back to
// the wrapped store on a miss. Lists always go to the wrapped store.
// Redis failures degrade to uncached reads.
type BookingReadStore struct {
	next   queries.BookingReadStore
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewBookingReadStore(next queries.BookingReadStore, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	key := BookingKey(id)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v queries.BookingView
		if err := json.Unmarshal(raw, &v); err == nil {
			return &v, nil
		}
		s.logger.Warn("discarding undecodable cached booking", "key", key)
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("booking cache read failed", "key", key, "error", err.Error())
	}

	gen, genErr := s.rdb.Get(ctx, GenerationKey(id)).Result()
	switch {
	case errors.Is(genErr, redis.Nil):
		gen, genErr = "0", nil
	case genErr != nil:
		s.logger.Warn("booking cache generation read failed", "key", key, "error", genErr.Error())
	}

	v, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return v, nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	stored, err := s.rdb.Eval(ctx, setIfGeneration, []string{key, GenerationKey(id)},
		gen, string(payload), s.ttl.Milliseconds()).Int64()
	switch {
	case err != nil:
		s.logger.Warn("booking cache write failed", "key", key, "error", err.Error())
	case stored == 0:
		s.logger.Debug("booking changed during read; not caching", "key", key)
	}
	return v, nil
}

func (s *BookingReadStore) List(ctx context.Context, q queries.BookingListQuery) ([]*queries.BookingView, error) {
	return s.next.List(ctx, q)
}

type Invalidator struct {
	rdb redis.Cmdable
}

func NewInvalidator(rdb redis.Cmdable) *Invalidator {
	return &Invalidator{rdb: rdb}
}

// InvalidateBooking bumps the generation marker and drops the cached view,
// so reads that started before the write cannot store what they saw.
func (i *Invalidator) InvalidateBooking(ctx context.Context, id uuid.UUID) error {
	gen := GenerationKey(id)
	_, err := i.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, gen)
		pipe.Expire(ctx, gen, generationTTL)
		pipe.Del(ctx, BookingKey(id))
		return nil
	})
	return err
}
