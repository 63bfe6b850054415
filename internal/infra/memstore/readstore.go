package memstore

import (
	"context"
	"sort"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type BookingReadStore struct {
	store *Store
}

func NewBookingReadStore(s *Store) *BookingReadStore {
	return &BookingReadStore{store: s}
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	snap, ok := r.store.booking(id)
	if !ok {
		return nil, infra.WrapRepoErr(r.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	return queries.NewBookingView(booking.Reconstruct(snap)), nil
}

func (r *BookingReadStore) List(_ context.Context, q queries.BookingListQuery) ([]*queries.BookingView, error) {
	r.store.mu.RLock()
	snaps := lo.Values(r.store.bookings)
	r.store.mu.RUnlock()

	snaps = lo.Filter(snaps, func(s booking.Snapshot, _ int) bool {
		if q.HotelAdmin != nil && s.HotelAdmin != *q.HotelAdmin {
			return false
		}
		if q.UserID != nil && (s.UserID == nil || *s.UserID != *q.UserID) {
			return false
		}
		if q.Status != nil && !s.Status.Equal(booking.Status(*q.Status)) {
			return false
		}
		return q.After == nil || afterKeyset(s.CreatedAt.UnixMicro(), s.ID, q.After, q.Order)
	})
	sortByKeyset(snaps, q.Order, func(s booking.Snapshot) (int64, uuid.UUID) {
		return s.CreatedAt.UnixMicro(), s.ID
	})
	if q.Limit > 0 && len(snaps) > int(q.Limit) {
		snaps = snaps[:q.Limit]
	}

	return lo.Map(snaps, func(s booking.Snapshot, _ int) *queries.BookingView {
		return queries.NewBookingView(booking.Reconstruct(cloneBooking(s)))
	}), nil
}

type RefundReadStore struct {
	store *Store
}

func NewRefundReadStore(s *Store) *RefundReadStore {
	return &RefundReadStore{store: s}
}

func (r *RefundReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RefundView, error) {
	snap, ok := r.store.refund(id)
	if !ok {
		return nil, infra.WrapRepoErr(r.store.logger, infra.KindNotFound, "refund request not found", nil)
	}
	return r.view(snap), nil
}

func (r *RefundReadStore) List(_ context.Context, f queries.RefundFilter) ([]*queries.RefundView, error) {
	r.store.mu.RLock()
	snaps := lo.Values(r.store.refunds)
	r.store.mu.RUnlock()

	snaps = lo.Filter(snaps, func(s refund.Snapshot, _ int) bool {
		if f.BookingID != nil && s.BookingID != *f.BookingID {
			return false
		}
		return f.Status == nil || s.Status == *f.Status
	})
	sortByKeyset(snaps, f.Order, func(s refund.Snapshot) (int64, uuid.UUID) {
		return s.RequestedAt.UnixMicro(), s.ID
	})

	return lo.Map(snaps, func(s refund.Snapshot, _ int) *queries.RefundView {
		return r.view(s)
	}), nil
}

func (r *RefundReadStore) ListUnconfirmed(ctx context.Context) ([]*queries.RefundView, error) {
	approved := refund.StatusApproved
	rows, err := r.List(ctx, queries.RefundFilter{Status: &approved, Order: queries.OrderOldestFirst})
	if err != nil {
		return nil, err
	}
	return lo.Filter(rows, func(v *queries.RefundView, _ int) bool {
		return v.Unconfirmed
	}), nil
}

func (r *RefundReadStore) view(s refund.Snapshot) *queries.RefundView {
	v := queries.NewRefundView(refund.Reconstruct(cloneRefund(s)))
	if s.Status == refund.StatusApproved {
		if b, ok := r.store.booking(s.BookingID); ok && b.Refund != nil && b.Refund.RefundRequestID == s.ID {
			v.Unconfirmed = true
		}
	}
	return v
}

func afterKeyset(micros int64, id uuid.UUID, k *queries.Keyset, order queries.SortOrder) bool {
	km := k.CreatedAt.UnixMicro()
	if order == queries.OrderOldestFirst {
		return micros > km || (micros == km && id.String() > k.ID.String())
	}
	return micros < km || (micros == km && id.String() < k.ID.String())
}

func sortByKeyset[T any](items []T, order queries.SortOrder, key func(T) (int64, uuid.UUID)) {
	sort.Slice(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti == tj {
			if order == queries.OrderOldestFirst {
				return idi.String() < idj.String()
			}
			return idi.String() > idj.String()
		}
		if order == queries.OrderOldestFirst {
			return ti < tj
		}
		return ti > tj
	})
}
