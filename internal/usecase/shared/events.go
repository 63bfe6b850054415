package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TopicBookingCreated       = "booking.created"
	TopicBookingStatusChanged = "booking.status_changed"
	TopicBookingRoomAssigned  = "booking.room_assigned"
	TopicRefundRequested      = "refund.requested"
	TopicRefundResolved       = "refund.resolved"
	TopicRefundProcessed      = "refund.processed"
)

// Event is published after the transaction that produced it commits.
type Event struct {
	Topic       string
	AggregateID uuid.UUID
	ActorID     uuid.UUID
	OccurredAt  time.Time
	Data        map[string]any
}

type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// BookingCacheInvalidator drops cached booking views after a committed write.
type BookingCacheInvalidator interface {
	InvalidateBooking(ctx context.Context, id uuid.UUID) error
}

type Metrics interface {
	BookingTransition(from, to string)
	BookingCreated()
	RefundTransition(to string)
	OperationFailed(operation, kind string)
}

type NopMetrics struct{}

func (NopMetrics) BookingTransition(string, string) {}
func (NopMetrics) BookingCreated()                  {}
func (NopMetrics) RefundTransition(string)          {}
func (NopMetrics) OperationFailed(string, string)   {}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }

type NopCache struct{}

func (NopCache) InvalidateBooking(context.Context, uuid.UUID) error { return nil }
