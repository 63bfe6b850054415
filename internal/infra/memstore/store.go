package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// WriteOp names a repository write for fault injection.
type WriteOp string

const (
	OpCreateBooking    WriteOp = "bookings.create"
	OpUpdateStatus     WriteOp = "bookings.update_status"
	OpUpdateRoomNumber WriteOp = "bookings.update_room_number"
	OpSaveRefund       WriteOp = "bookings.save_refund"
	OpCreateRefund     WriteOp = "refunds.create"
	OpUpdateRefund     WriteOp = "refunds.update"
)

type roomKey struct {
	hotelID uuid.UUID
	roomID  uuid.UUID
}

// Store is an in-process document store. Transactions are serialized, which
// gives the same guarantees as row locks taken with SELECT ... FOR UPDATE.
// Writes are staged on the transaction and applied only on commit.
type Store struct {
	writer  chan struct{}
	mu      sync.RWMutex
	timeout time.Duration
	logger  *slog.Logger

	bookings   map[uuid.UUID]booking.Snapshot
	references map[string]uuid.UUID
	refunds    map[uuid.UUID]refund.Snapshot
	rooms      map[roomKey]shared.RoomListing

	failure     error
	writeFaults map[WriteOp]error
}

func New(timeout time.Duration) *Store {
	return &Store{
		writer:      make(chan struct{}, 1),
		timeout:     timeout,
		logger:      slog.Default(),
		bookings:    make(map[uuid.UUID]booking.Snapshot),
		references:  make(map[string]uuid.UUID),
		refunds:     make(map[uuid.UUID]refund.Snapshot),
		rooms:       make(map[roomKey]shared.RoomListing),
		writeFaults: make(map[WriteOp]error),
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return infra.WrapRepoErr(s.logger, infra.KindUnavailable, "timed out waiting for transaction", ctx.Err())
	}
	defer func() { <-s.writer }()

	if err := s.takeFailure(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindUnavailable, "store unavailable", err)
	}

	tx := newMemTx(s)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindUnavailable, "transaction deadline exceeded", err)
	}
	s.commit(tx)
	return nil
}

func (s *Store) commit(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, b := range tx.bookings {
		if prev, ok := s.bookings[id]; ok && prev.Reference != b.Reference {
			delete(s.references, prev.Reference)
		}
		s.bookings[id] = b
		s.references[b.Reference] = id
	}
	for id, r := range tx.refunds {
		s.refunds[id] = r
	}
}

// FailNextTransaction makes the next Within call fail as unavailable
// without running its function.
func (s *Store) FailNextTransaction(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Store) takeFailure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.failure
	s.failure = nil
	return err
}

// FailWrite makes the next op inside a transaction fail as unavailable.
// Writes staged earlier in that transaction are discarded with it.
func (s *Store) FailWrite(op WriteOp, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeFaults[op] = err
}

func (s *Store) takeWriteFault(op WriteOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err, ok := s.writeFaults[op]
	if !ok {
		return nil
	}
	delete(s.writeFaults, op)
	return infra.WrapRepoErr(s.logger, infra.KindUnavailable, "store unavailable during "+string(op), err)
}

// PutRoom registers a catalogue entry.
func (s *Store) PutRoom(listing shared.RoomListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[roomKey{hotelID: listing.Hotel.ID, roomID: listing.Room.ID}] = listing
}

// PutBooking stores a booking as-is, bypassing the lifecycle rules.
func (s *Store) PutBooking(b booking.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = cloneBooking(b)
	s.references[b.Reference] = b.ID
}

// PutRefund stores a refund request as-is.
func (s *Store) PutRefund(r refund.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refunds[r.ID] = cloneRefund(r)
}

func (s *Store) booking(id uuid.UUID) (booking.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	return cloneBooking(b), ok
}

func (s *Store) refund(id uuid.UUID) (refund.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.refunds[id]
	return cloneRefund(r), ok
}

func cloneBooking(b booking.Snapshot) booking.Snapshot {
	b.GuestInfo = append([]booking.GuestInfo(nil), b.GuestInfo...)
	if b.UserID != nil {
		id := *b.UserID
		b.UserID = &id
	}
	if b.Payment != nil {
		p := *b.Payment
		b.Payment = &p
	}
	if b.Refund != nil {
		r := *b.Refund
		b.Refund = &r
	}
	return b
}

func cloneRefund(r refund.Snapshot) refund.Snapshot {
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		r.ProcessedAt = &t
	}
	if r.ProcessedBy != nil {
		id := *r.ProcessedBy
		r.ProcessedBy = &id
	}
	return r
}
