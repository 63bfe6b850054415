package commands

import (
	"context"
	"log/slog"

	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// SideEffects runs the post-commit work shared by every command: cache
// invalidation, event publication and metrics. Failures here are logged and
// never undo a committed write.
type SideEffects struct {
	publisher shared.EventPublisher
	cache     shared.BookingCacheInvalidator
	metrics   shared.Metrics
}

func NewSideEffects(publisher shared.EventPublisher, cache shared.BookingCacheInvalidator, metrics shared.Metrics) *SideEffects {
	return &SideEffects{publisher: publisher, cache: cache, metrics: metrics}
}

// NopSideEffects is used where no cache, broker or registry is wired.
func NopSideEffects() *SideEffects {
	return NewSideEffects(shared.NopPublisher{}, shared.NopCache{}, shared.NopMetrics{})
}

func (s *SideEffects) afterCommit(ctx context.Context, bookingID uuid.UUID, events ...shared.Event) {
	if bookingID != uuid.Nil {
		if err := s.cache.InvalidateBooking(ctx, bookingID); err != nil {
			slog.Warn("failed to invalidate booking cache", "booking_id", bookingID, "error", err.Error())
		}
	}
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		slog.Warn("failed to publish events", "topic", events[0].Topic, "count", len(events), "error", err.Error())
	}
}

func (s *SideEffects) failed(operation string, err error) error {
	kind := errs.Kind(err)
	s.metrics.OperationFailed(operation, kind)
	if kind == "internal" || kind == "store_unavailable" {
		slog.Error("command failed", "operation", operation, "kind", kind, "error", err.Error())
	}
	return err
}
