package repository

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/infra"
	"hotel-booking-core/internal/infra/db"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingRepository(dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		db:     dbtx,
		logger: logger,
	}
}

const insertBooking = `
INSERT INTO bookings (` + BookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()

	hotel, err := pgconv.JSONB(&s.Hotel)
	if err != nil {
		return r.encodeErr(err)
	}
	room, err := pgconv.JSONB(&s.Room)
	if err != nil {
		return r.encodeErr(err)
	}
	guests := s.GuestInfo
	if guests == nil {
		guests = []booking.GuestInfo{}
	}
	guestInfo, err := pgconv.JSONB(&guests)
	if err != nil {
		return r.encodeErr(err)
	}
	payment, err := pgconv.JSONB(s.Payment)
	if err != nil {
		return r.encodeErr(err)
	}
	refundInfo, err := pgconv.JSONB(s.Refund)
	if err != nil {
		return r.encodeErr(err)
	}

	_, err = r.db.Exec(ctx, insertBooking,
		s.ID, s.Reference, pgconv.UUIDPtrToPgtype(s.UserID), s.HotelAdmin, hotel, room,
		pgconv.DateToPgtype(s.CheckIn.Time()), pgconv.DateToPgtype(s.CheckOut.Time()),
		int32(s.Nights), int32(s.Guests), guestInfo, s.TotalPrice, s.TaxesAndFees,
		s.TotalAmount, s.Status.String(), s.RoomNumber, payment, refundInfo, s.SpecialNotes,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to create booking", err)
	}
	return nil
}

const selectBookingForUpdate = `SELECT ` + BookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	s, err := ScanBooking(r.db.QueryRow(ctx, selectBookingForUpdate, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to load booking", err)
	}
	return booking.Reconstruct(s), nil
}

// Status comparison is case-insensitive so legacy rows stored as
// "Confirmed" still match.
const updateBookingStatus = `
UPDATE bookings SET status = $3, updated_at = $4
WHERE id = $1 AND lower(status) = lower($2)`

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, updateBookingStatus, id, expected.String(), next.String(), updatedAt)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, id, "booking status changed concurrently")
	}
	return nil
}

const updateBookingRoomNumber = `UPDATE bookings SET room_number = $2, updated_at = $3 WHERE id = $1`

func (r *BookingRepository) UpdateRoomNumber(ctx context.Context, id uuid.UUID, roomNumber string, updatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, updateBookingRoomNumber, id, roomNumber, updatedAt)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to update room number", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

const updateBookingRefund = `
UPDATE bookings SET refund_info = $2, updated_at = $3
WHERE id = $1 AND refund_info IS NULL`

func (r *BookingRepository) SaveRefund(ctx context.Context, id uuid.UUID, info booking.RefundInfo, updatedAt time.Time) error {
	raw, err := pgconv.JSONB(&info)
	if err != nil {
		return r.encodeErr(err)
	}
	tag, err := r.db.Exec(ctx, updateBookingRefund, id, raw, updatedAt)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to save booking refund", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, id, "booking refund already recorded")
	}
	return nil
}

const bookingExists = `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`

// missOrStale tells a missing row apart from a lost compare-and-swap.
func (r *BookingRepository) missOrStale(ctx context.Context, id uuid.UUID, staleMsg string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, bookingExists, id).Scan(&exists); err != nil {
		return infra.WrapRepoErr(r.logger, infra.ClassifyPgError(err), "failed to check booking", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return infra.WrapRepoErr(r.logger, infra.KindStaleWrite, staleMsg, nil)
}

func (r *BookingRepository) encodeErr(err error) error {
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode booking document", errs.Wrap(err, "json"))
}
