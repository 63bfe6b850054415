package shared

import (
	"context"
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one store transaction. Every read-check-write of a
	// booking or refund request goes through here.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Refunds() RefundRepository
	Hotels() HotelDirectory
}

type BookingRepository interface {
	// Create fails with KindDuplicateKey when the reference is taken.
	Create(ctx context.Context, b *booking.Booking) error
	// GetForUpdate loads the booking and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus is a compare-and-swap on the stored status; a mismatch
	// fails with KindStaleWrite.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next booking.Status, updatedAt time.Time) error
	UpdateRoomNumber(ctx context.Context, id uuid.UUID, roomNumber string, updatedAt time.Time) error
	// SaveRefund writes refundInfo only if the booking has none yet.
	SaveRefund(ctx context.Context, id uuid.UUID, info booking.RefundInfo, updatedAt time.Time) error
}

type RefundRepository interface {
	// Create fails with KindDuplicateKey when the booking already has a live request.
	Create(ctx context.Context, r *refund.Request) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*refund.Request, error)
	HasLiveRequest(ctx context.Context, bookingID uuid.UUID) (bool, error)
	// Update persists the resolution fields of r if the stored status is
	// still expected.
	Update(ctx context.Context, r *refund.Request, expected refund.Status) error
}

// HotelDirectory reads the externally managed hotel and room catalogue.
type HotelDirectory interface {
	RoomByID(ctx context.Context, hotelID, roomID uuid.UUID) (*RoomListing, error)
}

type RoomListing struct {
	HotelAdmin uuid.UUID
	Hotel      booking.HotelDetails
	Room       booking.RoomDetails
}
