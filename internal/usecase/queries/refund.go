package queries

import (
	"context"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRefundNotFound     = refund.ErrNotFound
	ErrRefundAccess       = errs.Mark(errs.New("refund request access denied"), errs.ErrForbidden)
	ErrBookingScopeNeeded = errs.Mark(errs.New("booking_id is required"), errs.ErrForbidden)
)

type RefundFilter struct {
	BookingID *uuid.UUID
	Status    *refund.Status
	Order     SortOrder
}

type RefundReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RefundView, error)
	List(ctx context.Context, f RefundFilter) ([]*RefundView, error)
	// ListUnconfirmed returns approved requests whose booking already
	// records a refund naming them.
	ListUnconfirmed(ctx context.Context) ([]*RefundView, error)
}

type RefundQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*RefundView, error)
	List(ctx context.Context, f RefundFilter, a actor.Actor) ([]*RefundView, error)
	ListUnconfirmed(ctx context.Context, a actor.Actor) ([]*RefundView, error)
}

type refundQueriesImpl struct {
	repo     RefundReadStore
	bookings BookingReadStore
}

func NewRefundQueries(repo RefundReadStore, bookings BookingReadStore) RefundQueries {
	return &refundQueriesImpl{repo: repo, bookings: bookings}
}

func (q *refundQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*RefundView, error) {
	if err := actor.RequireAuthenticated(a); err != nil {
		return nil, err
	}
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, infra.ToDomainError(err, ErrRefundNotFound)
	}
	if !a.IsSuperAdmin() {
		if err := q.requireBookingAccess(ctx, v.BookingID, a); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// List is unrestricted for super-admins. Everyone else must scope the
// listing to a booking they can see.
func (q *refundQueriesImpl) List(ctx context.Context, f RefundFilter, a actor.Actor) ([]*RefundView, error) {
	if err := actor.RequireAuthenticated(a); err != nil {
		return nil, err
	}
	if f.Order == "" {
		f.Order = OrderNewestFirst
	}
	if !a.IsSuperAdmin() {
		if f.BookingID == nil {
			return nil, ErrBookingScopeNeeded
		}
		if err := q.requireBookingAccess(ctx, *f.BookingID, a); err != nil {
			return nil, err
		}
	}

	rows, err := q.repo.List(ctx, f)
	if err != nil {
		return nil, infra.ToDomainError(err, err)
	}
	return rows, nil
}

func (q *refundQueriesImpl) ListUnconfirmed(ctx context.Context, a actor.Actor) ([]*RefundView, error) {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return nil, err
	}
	rows, err := q.repo.ListUnconfirmed(ctx)
	if err != nil {
		return nil, infra.ToDomainError(err, err)
	}
	return rows, nil
}

func (q *refundQueriesImpl) requireBookingAccess(ctx context.Context, bookingID uuid.UUID, a actor.Actor) error {
	b, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRefundAccess
		}
		return infra.ToDomainError(err, err)
	}
	if !b.VisibleTo(a.ID, false) {
		return ErrRefundAccess
	}
	return nil
}
