package repository

import (
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingColumns is the select list ScanBooking expects.
const BookingColumns = `id, reference, user_id, hotel_admin, hotel_details, room_details,
	check_in, check_out, nights, guests, guest_info, total_price, taxes_and_fees,
	total_amount, status, room_number, payment_info, refund_info, special_notes,
	created_at, updated_at`

// RefundColumns is the select list ScanRefund expects.
const RefundColumns = `id, booking_id, booking_reference, total_amount, reason, description,
	contact_phone, preferred_refund_method, status, requested_at, requested_by,
	admin_notes, processed_at, processed_by, refund_id, updated_at`

func ScanBooking(row pgx.Row) (booking.Snapshot, error) {
	var (
		s                     booking.Snapshot
		userID                pgtype.UUID
		hotelRaw, roomRaw     []byte
		guestRaw              []byte
		paymentRaw, refundRaw []byte
		checkIn, checkOut     pgtype.Date
		nights, guests        int32
		status                string
	)
	err := row.Scan(
		&s.ID, &s.Reference, &userID, &s.HotelAdmin, &hotelRaw, &roomRaw,
		&checkIn, &checkOut, &nights, &guests, &guestRaw, &s.TotalPrice, &s.TaxesAndFees,
		&s.TotalAmount, &status, &s.RoomNumber, &paymentRaw, &refundRaw, &s.SpecialNotes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return booking.Snapshot{}, err
	}

	s.UserID = pgconv.UUIDPtrFromPgtype(userID)
	s.CheckIn = booking.DateOf(pgconv.DateFromPgtype(checkIn))
	s.CheckOut = booking.DateOf(pgconv.DateFromPgtype(checkOut))
	s.Nights = int(nights)
	s.Guests = int(guests)
	s.Status = booking.Status(status)
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	hotel, err := pgconv.FromJSONB[booking.HotelDetails](hotelRaw)
	if err != nil {
		return booking.Snapshot{}, errs.Wrap(err, "decode hotel_details")
	}
	if hotel != nil {
		s.Hotel = *hotel
	}
	room, err := pgconv.FromJSONB[booking.RoomDetails](roomRaw)
	if err != nil {
		return booking.Snapshot{}, errs.Wrap(err, "decode room_details")
	}
	if room != nil {
		s.Room = *room
	}
	guestInfo, err := pgconv.FromJSONB[[]booking.GuestInfo](guestRaw)
	if err != nil {
		return booking.Snapshot{}, errs.Wrap(err, "decode guest_info")
	}
	if guestInfo != nil {
		s.GuestInfo = *guestInfo
	}
	if s.Payment, err = pgconv.FromJSONB[booking.PaymentInfo](paymentRaw); err != nil {
		return booking.Snapshot{}, errs.Wrap(err, "decode payment_info")
	}
	if s.Refund, err = pgconv.FromJSONB[booking.RefundInfo](refundRaw); err != nil {
		return booking.Snapshot{}, errs.Wrap(err, "decode refund_info")
	}
	return s, nil
}

// ScanRefund reads RefundColumns followed by any extra destinations.
func ScanRefund(row pgx.Row, extra ...any) (refund.Snapshot, error) {
	var (
		s           refund.Snapshot
		method      string
		status      string
		processedAt pgtype.Timestamptz
		processedBy pgtype.UUID
	)
	dest := []any{
		&s.ID, &s.BookingID, &s.BookingReference, &s.TotalAmount, &s.Reason, &s.Description,
		&s.ContactPhone, &method, &status, &s.RequestedAt, &s.RequestedBy,
		&s.AdminNotes, &processedAt, &processedBy, &s.RefundID, &s.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	if err != nil {
		return refund.Snapshot{}, err
	}
	s.PreferredRefundMethod = refund.Method(method)
	s.Status = refund.Status(status)
	s.RequestedAt = s.RequestedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	s.ProcessedAt = pgconv.TimePtrFromPgtype(processedAt)
	s.ProcessedBy = pgconv.UUIDPtrFromPgtype(processedBy)
	return s, nil
}
