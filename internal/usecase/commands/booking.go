package commands

import (
	"context"
	"log/slog"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateStatusInput struct {
	BookingID uuid.UUID
	// Expected is the status the caller last observed.
	Expected string
	Next     string
}

type BookingCommands interface {
	UpdateStatus(ctx context.Context, in UpdateStatusInput, a actor.Actor) (*booking.Booking, error)
	AssignRoomNumber(ctx context.Context, bookingID uuid.UUID, roomNumber string, a actor.Actor) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	effects *SideEffects
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, effects *SideEffects) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk, effects: effects}
}

func (uc *bookingUseCaseImpl) UpdateStatus(ctx context.Context, in UpdateStatusInput, a actor.Actor) (*booking.Booking, error) {
	expected := booking.ParseStatus(in.Expected)
	next := booking.ParseStatus(in.Next)
	now := uc.clock.Now()

	var (
		result  *booking.Booking
		from    booking.Status
		changed bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetForUpdate(ctx, in.BookingID)
		if err != nil {
			return infra.ToDomainError(err, booking.ErrNotFound)
		}
		from = b.Status()

		changed, err = b.ChangeStatus(a, expected, next, now)
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Bookings().UpdateStatus(ctx, b.ID(), from, b.Status(), now); err != nil {
				return infra.ToDomainError(err, booking.ErrNotFound)
			}
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("update_booking_status", infra.ToDomainError(err, err))
	}
	if !changed {
		return result, nil
	}

	slog.Info("booking status changed",
		"booking_id", result.ID(),
		"from", from.String(),
		"to", result.Status().String(),
		"actor_id", a.ID)
	if from == booking.StatusCancelled && result.Refund() != nil {
		slog.Warn("booking reactivated while carrying a processed refund",
			"booking_id", result.ID(),
			"refund_id", result.Refund().RefundID)
	}

	uc.effects.metrics.BookingTransition(from.String(), result.Status().String())
	uc.effects.afterCommit(ctx, result.ID(), shared.Event{
		Topic:       shared.TopicBookingStatusChanged,
		AggregateID: result.ID(),
		ActorID:     a.ID,
		OccurredAt:  now,
		Data: map[string]any{
			"reference": result.Reference(),
			"from":      from.String(),
			"to":        result.Status().String(),
		},
	})
	return result, nil
}

func (uc *bookingUseCaseImpl) AssignRoomNumber(ctx context.Context, bookingID uuid.UUID, roomNumber string, a actor.Actor) (*booking.Booking, error) {
	now := uc.clock.Now()

	var result *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetForUpdate(ctx, bookingID)
		if err != nil {
			return infra.ToDomainError(err, booking.ErrNotFound)
		}
		if err := b.AssignRoomNumber(a, roomNumber, now); err != nil {
			return err
		}
		if err := tx.Bookings().UpdateRoomNumber(ctx, b.ID(), b.RoomNumber(), now); err != nil {
			return infra.ToDomainError(err, booking.ErrNotFound)
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("assign_room_number", infra.ToDomainError(err, err))
	}

	slog.Info("room number assigned", "booking_id", result.ID(), "room_number", result.RoomNumber(), "actor_id", a.ID)
	uc.effects.afterCommit(ctx, result.ID(), shared.Event{
		Topic:       shared.TopicBookingRoomAssigned,
		AggregateID: result.ID(),
		ActorID:     a.ID,
		OccurredAt:  now,
		Data: map[string]any{
			"reference":  result.Reference(),
			"roomNumber": result.RoomNumber(),
		},
	})
	return result, nil
}
