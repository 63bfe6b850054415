package queries

import (
	"context"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = booking.ErrNotFound
	ErrBookingAccess   = errs.Mark(errs.New("booking access denied"), errs.ErrForbidden)
)

type BookingFilter struct {
	HotelAdmin *uuid.UUID
	UserID     *uuid.UUID
	Status     *string
	Order      SortOrder
}

// BookingListQuery is what the read store executes: a filter whose
// ownership scope has already been applied, plus the keyset position.
type BookingListQuery struct {
	BookingFilter
	After *Keyset
	Limit int32
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, q BookingListQuery) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter, a actor.Actor, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo BookingReadStore
}

func NewBookingQueries(repo BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, a actor.Actor) (*BookingView, error) {
	if err := actor.RequireAuthenticated(a); err != nil {
		return nil, err
	}
	v, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, infra.ToDomainError(err, ErrBookingNotFound)
	}
	if !v.VisibleTo(a.ID, a.IsSuperAdmin()) {
		return nil, ErrBookingAccess
	}
	return v, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, a actor.Actor, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	scoped, err := scopeBookingFilter(filter, a)
	if err != nil {
		return nil, nil, err
	}
	after, err := cursor.Keyset()
	if err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	rows, err := q.repo.List(ctx, BookingListQuery{
		BookingFilter: scoped,
		After:         after,
		Limit:         int32(limit + 1),
	})
	if err != nil {
		return nil, nil, infra.ToDomainError(err, err)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// scopeBookingFilter applies the ownership rule: super-admins see every
// booking, hotel staff only their own hotel's, guests only their own.
func scopeBookingFilter(f BookingFilter, a actor.Actor) (BookingFilter, error) {
	if err := actor.RequireAuthenticated(a); err != nil {
		return BookingFilter{}, err
	}
	if f.Order == "" {
		f.Order = OrderNewestFirst
	}
	if f.Status != nil {
		s := booking.ParseStatus(*f.Status).String()
		f.Status = &s
	}
	if a.IsSuperAdmin() {
		return f, nil
	}

	id := a.ID
	if a.Role.IsHotelStaff() {
		if f.HotelAdmin != nil && *f.HotelAdmin != id {
			return BookingFilter{}, ErrBookingAccess
		}
		f.HotelAdmin = &id
		return f, nil
	}
	if f.UserID != nil && *f.UserID != id {
		return BookingFilter{}, ErrBookingAccess
	}
	f.UserID = &id
	return f, nil
}
