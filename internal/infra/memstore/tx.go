package memstore

import (
	"context"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	store    *Store
	bookings map[uuid.UUID]booking.Snapshot
	refunds  map[uuid.UUID]refund.Snapshot
}

func newMemTx(s *Store) *memTx {
	return &memTx{
		store:    s,
		bookings: make(map[uuid.UUID]booking.Snapshot),
		refunds:  make(map[uuid.UUID]refund.Snapshot),
	}
}

func (t *memTx) Bookings() shared.BookingRepository { return &bookingRepo{tx: t} }
func (t *memTx) Refunds() shared.RefundRepository   { return &refundRepo{tx: t} }
func (t *memTx) Hotels() shared.HotelDirectory      { return &hotelDirectory{store: t.store} }

func (t *memTx) booking(id uuid.UUID) (booking.Snapshot, bool) {
	if b, ok := t.bookings[id]; ok {
		return cloneBooking(b), true
	}
	return t.store.booking(id)
}

func (t *memTx) refund(id uuid.UUID) (refund.Snapshot, bool) {
	if r, ok := t.refunds[id]; ok {
		return cloneRefund(r), true
	}
	return t.store.refund(id)
}

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if err := r.tx.store.takeWriteFault(OpCreateBooking); err != nil {
		return err
	}
	snap := b.Snapshot()
	if _, exists := r.tx.booking(snap.ID); exists {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "booking id already exists", nil)
	}
	if r.referenceTaken(snap.Reference) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "booking reference already exists", nil)
	}
	r.tx.bookings[snap.ID] = snap
	return nil
}

func (r *bookingRepo) referenceTaken(ref string) bool {
	for _, b := range r.tx.bookings {
		if b.Reference == ref {
			return true
		}
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	_, ok := r.tx.store.references[ref]
	return ok
}

func (r *bookingRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.tx.booking(id)
	if !ok {
		return nil, infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	return booking.Reconstruct(snap), nil
}

func (r *bookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, expected, next booking.Status, updatedAt time.Time) error {
	if err := r.tx.store.takeWriteFault(OpUpdateStatus); err != nil {
		return err
	}
	snap, ok := r.tx.booking(id)
	if !ok {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	if !snap.Status.Equal(expected) {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindStaleWrite, "booking status changed concurrently", nil)
	}
	snap.Status = next
	snap.UpdatedAt = updatedAt
	r.tx.bookings[id] = snap
	return nil
}

func (r *bookingRepo) UpdateRoomNumber(_ context.Context, id uuid.UUID, roomNumber string, updatedAt time.Time) error {
	if err := r.tx.store.takeWriteFault(OpUpdateRoomNumber); err != nil {
		return err
	}
	snap, ok := r.tx.booking(id)
	if !ok {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	snap.RoomNumber = roomNumber
	snap.UpdatedAt = updatedAt
	r.tx.bookings[id] = snap
	return nil
}

func (r *bookingRepo) SaveRefund(_ context.Context, id uuid.UUID, info booking.RefundInfo, updatedAt time.Time) error {
	if err := r.tx.store.takeWriteFault(OpSaveRefund); err != nil {
		return err
	}
	snap, ok := r.tx.booking(id)
	if !ok {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "booking not found", nil)
	}
	if snap.Refund != nil {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindStaleWrite, "booking refund already recorded", nil)
	}
	snap.Refund = &info
	snap.UpdatedAt = updatedAt
	r.tx.bookings[id] = snap
	return nil
}

type refundRepo struct {
	tx *memTx
}

func (r *refundRepo) Create(ctx context.Context, req *refund.Request) error {
	if err := r.tx.store.takeWriteFault(OpCreateRefund); err != nil {
		return err
	}
	snap := req.Snapshot()
	if _, exists := r.tx.refund(snap.ID); exists {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "refund request id already exists", nil)
	}
	live, err := r.HasLiveRequest(ctx, snap.BookingID)
	if err != nil {
		return err
	}
	if live {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindDuplicateKey, "booking already has a live refund request", nil)
	}
	r.tx.refunds[snap.ID] = snap
	return nil
}

func (r *refundRepo) GetForUpdate(_ context.Context, id uuid.UUID) (*refund.Request, error) {
	snap, ok := r.tx.refund(id)
	if !ok {
		return nil, infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "refund request not found", nil)
	}
	return refund.Reconstruct(snap), nil
}

func (r *refundRepo) HasLiveRequest(_ context.Context, bookingID uuid.UUID) (bool, error) {
	for _, s := range r.tx.refunds {
		if s.BookingID == bookingID && s.Status.IsLive() {
			return true, nil
		}
	}

	store := r.tx.store
	store.mu.RLock()
	defer store.mu.RUnlock()
	for id, s := range store.refunds {
		if _, staged := r.tx.refunds[id]; staged {
			continue
		}
		if s.BookingID == bookingID && s.Status.IsLive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *refundRepo) Update(_ context.Context, req *refund.Request, expected refund.Status) error {
	if err := r.tx.store.takeWriteFault(OpUpdateRefund); err != nil {
		return err
	}
	current, ok := r.tx.refund(req.ID())
	if !ok {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindNotFound, "refund request not found", nil)
	}
	if current.Status != expected {
		return infra.WrapRepoErr(r.tx.store.logger, infra.KindStaleWrite, "refund request status changed concurrently", nil)
	}
	r.tx.refunds[req.ID()] = req.Snapshot()
	return nil
}

type hotelDirectory struct {
	store *Store
}

func (h *hotelDirectory) RoomByID(_ context.Context, hotelID, roomID uuid.UUID) (*shared.RoomListing, error) {
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	listing, ok := h.store.rooms[roomKey{hotelID: hotelID, roomID: roomID}]
	if !ok {
		return nil, infra.WrapRepoErr(h.store.logger, infra.KindNotFound, "room not found", nil)
	}
	return &listing, nil
}
