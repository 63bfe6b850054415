package commands

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/pkg/clock"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
)

const refundIDPrefix = "rf_"

type ResolveInput struct {
	Decision   string
	AdminNotes string
}

type ProcessResult struct {
	Booking *booking.Booking
	Request *refund.Request
}

type RefundCommands interface {
	Create(ctx context.Context, bookingID uuid.UUID, in refund.NewInput, a actor.Actor) (*refund.Request, error)
	Resolve(ctx context.Context, requestID uuid.UUID, in ResolveInput, a actor.Actor) (*refund.Request, error)
	// Process records the refund on the booking and advances the request
	// in one transaction. Repeating it after a partial write completes the
	// request without recording a second refund.
	Process(ctx context.Context, requestID uuid.UUID, in refund.ProcessInput, a actor.Actor) (*ProcessResult, error)
	// Reconcile advances a processed-but-unconfirmed request.
	Reconcile(ctx context.Context, requestID uuid.UUID, a actor.Actor) (*refund.Request, error)
}

type refundUseCaseImpl struct {
	uow       shared.UnitOfWork
	clock     clock.Clock
	effects   *SideEffects
	newRefund func() string
}

func NewRefundUseCase(uow shared.UnitOfWork, clk clock.Clock, effects *SideEffects) RefundCommands {
	return &refundUseCaseImpl{
		uow:     uow,
		clock:   clk,
		effects: effects,
		newRefund: func() string {
			return refundIDPrefix + shortuuid.New()
		},
	}
}

func (uc *refundUseCaseImpl) Create(ctx context.Context, bookingID uuid.UUID, in refund.NewInput, a actor.Actor) (*refund.Request, error) {
	if err := actor.RequireAuthenticated(a); err != nil {
		return nil, uc.effects.failed("create_refund_request", err)
	}
	now := uc.clock.Now()

	var result *refund.Request
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetForUpdate(ctx, bookingID)
		if err != nil {
			return infra.ToDomainError(err, booking.ErrNotFound)
		}
		r, err := refund.NewRequest(b, a, in, now)
		if err != nil {
			return err
		}

		live, err := tx.Refunds().HasLiveRequest(ctx, b.ID())
		if err != nil {
			return infra.ToDomainError(err, err)
		}
		if live {
			return refund.ErrAlreadyRequested
		}
		if err := tx.Refunds().Create(ctx, r); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return refund.ErrAlreadyRequested
			}
			return infra.ToDomainError(err, err)
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("create_refund_request", infra.ToDomainError(err, err))
	}

	slog.Info("refund request created",
		"refund_request_id", result.ID(),
		"booking_id", result.BookingID(),
		"amount", result.TotalAmount().Minor(),
		"actor_id", a.ID)
	uc.effects.metrics.RefundTransition(result.Status().String())
	uc.effects.afterCommit(ctx, uuid.Nil, refundEvent(shared.TopicRefundRequested, result, a, now))
	return result, nil
}

func (uc *refundUseCaseImpl) Resolve(ctx context.Context, requestID uuid.UUID, in ResolveInput, a actor.Actor) (*refund.Request, error) {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return nil, uc.effects.failed("resolve_refund_request", err)
	}
	decision, err := refund.ParseDecision(in.Decision)
	if err != nil {
		return nil, uc.effects.failed("resolve_refund_request", err)
	}
	now := uc.clock.Now()

	var result *refund.Request
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Refunds().GetForUpdate(ctx, requestID)
		if err != nil {
			return infra.ToDomainError(err, refund.ErrNotFound)
		}
		prev := r.Status()
		if err := r.Resolve(a, decision, in.AdminNotes, now); err != nil {
			return err
		}
		if err := tx.Refunds().Update(ctx, r, prev); err != nil {
			return infra.ToDomainError(err, refund.ErrNotFound)
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("resolve_refund_request", infra.ToDomainError(err, err))
	}

	slog.Info("refund request resolved",
		"refund_request_id", result.ID(),
		"status", result.Status().String(),
		"actor_id", a.ID)
	uc.effects.metrics.RefundTransition(result.Status().String())
	uc.effects.afterCommit(ctx, uuid.Nil, refundEvent(shared.TopicRefundResolved, result, a, now))
	return result, nil
}

func (uc *refundUseCaseImpl) Process(ctx context.Context, requestID uuid.UUID, in refund.ProcessInput, a actor.Actor) (*ProcessResult, error) {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return nil, uc.effects.failed("process_refund", err)
	}
	now := uc.clock.Now()

	var (
		result   ProcessResult
		recorded bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, b, err := uc.lockPair(ctx, tx, requestID)
		if err != nil {
			return err
		}

		info, already, err := r.Settle(a, b, in, uc.newRefund(), now)
		if err != nil {
			return err
		}
		recorded = already
		if !already {
			if err := b.ApplyRefund(info, now); err != nil {
				return err
			}
			// booking first: it is the customer-visible side of the refund
			if err := tx.Bookings().SaveRefund(ctx, b.ID(), *b.Refund(), now); err != nil {
				return infra.ToDomainError(err, booking.ErrNotFound)
			}
		}

		prev := r.Status()
		if err := r.MarkProcessed(a, b, now); err != nil {
			return err
		}
		if err := tx.Refunds().Update(ctx, r, prev); err != nil {
			return infra.ToDomainError(err, refund.ErrNotFound)
		}
		result = ProcessResult{Booking: b, Request: r}
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("process_refund", infra.ToDomainError(err, err))
	}

	if recorded {
		slog.Warn("refund request completed from a previously recorded refund",
			"refund_request_id", result.Request.ID(),
			"refund_id", result.Request.RefundID())
	}
	slog.Info("refund processed",
		"refund_request_id", result.Request.ID(),
		"booking_id", result.Booking.ID(),
		"refund_id", result.Request.RefundID(),
		"amount", result.Booking.Refund().RefundAmount,
		"actor_id", a.ID)
	uc.effects.metrics.RefundTransition(result.Request.Status().String())
	evt := refundEvent(shared.TopicRefundProcessed, result.Request, a, now)
	evt.Data["refundId"] = result.Request.RefundID()
	evt.Data["refundAmount"] = result.Booking.Refund().RefundAmount
	uc.effects.afterCommit(ctx, result.Booking.ID(), evt)
	return &result, nil
}

func (uc *refundUseCaseImpl) Reconcile(ctx context.Context, requestID uuid.UUID, a actor.Actor) (*refund.Request, error) {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return nil, uc.effects.failed("reconcile_refund", err)
	}
	now := uc.clock.Now()

	var (
		result  *refund.Request
		changed bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, b, err := uc.lockPair(ctx, tx, requestID)
		if err != nil {
			return err
		}
		result = r
		if r.Status() == refund.StatusProcessed && b.HasRefundFor(r.ID()) {
			return nil
		}

		prev := r.Status()
		if err := r.MarkProcessed(a, b, now); err != nil {
			return err
		}
		if err := tx.Refunds().Update(ctx, r, prev); err != nil {
			return infra.ToDomainError(err, refund.ErrNotFound)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, uc.effects.failed("reconcile_refund", infra.ToDomainError(err, err))
	}
	if !changed {
		return result, nil
	}

	slog.Info("refund request reconciled",
		"refund_request_id", result.ID(),
		"refund_id", result.RefundID(),
		"actor_id", a.ID)
	uc.effects.metrics.RefundTransition(result.Status().String())
	evt := refundEvent(shared.TopicRefundProcessed, result, a, now)
	evt.Data["refundId"] = result.RefundID()
	evt.Data["reconciled"] = true
	uc.effects.afterCommit(ctx, result.BookingID(), evt)
	return result, nil
}

// lockPair locks the request, then its booking. Paths that lock both
// rows take the locks in this order.
func (uc *refundUseCaseImpl) lockPair(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*refund.Request, *booking.Booking, error) {
	r, err := tx.Refunds().GetForUpdate(ctx, requestID)
	if err != nil {
		return nil, nil, infra.ToDomainError(err, refund.ErrNotFound)
	}
	b, err := tx.Bookings().GetForUpdate(ctx, r.BookingID())
	if err != nil {
		return nil, nil, infra.ToDomainError(err, booking.ErrNotFound)
	}
	return r, b, nil
}

func refundEvent(topic string, r *refund.Request, a actor.Actor, now time.Time) shared.Event {
	return shared.Event{
		Topic:       topic,
		AggregateID: r.ID(),
		ActorID:     a.ID,
		OccurredAt:  now,
		Data: map[string]any{
			"bookingId":        r.BookingID().String(),
			"bookingReference": r.BookingReference(),
			"status":           r.Status().String(),
			"amount":           r.TotalAmount().Minor(),
		},
	}
}
