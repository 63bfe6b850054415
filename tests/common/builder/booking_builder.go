//go:build unit || e2e

package builder

import (
	"time"

	"hotel-booking-core/internal/domain/booking"

	"github.com/google/uuid"
)

var FixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	ID           uuid.UUID
	Reference    string
	UserID       *uuid.UUID
	HotelAdmin   uuid.UUID
	Hotel        booking.HotelDetails
	Room         booking.RoomDetails
	CheckIn      string
	CheckOut     string
	Guests       int
	GuestInfo    []booking.GuestInfo
	TaxRateBps   int64
	Payment      booking.PaymentInfo
	Status       booking.Status
	RoomNumber   string
	Refund       *booking.RefundInfo
	SpecialNotes string
	Now          time.Time
}

func NewBookingBuilder() *BookingBuilder {
	userID := uuid.New()
	hotelID := uuid.New()
	return &BookingBuilder{
		ID:         uuid.New(),
		Reference:  "BK123456",
		UserID:     &userID,
		HotelAdmin: uuid.New(),
		Hotel: booking.HotelDetails{
			ID:      hotelID,
			Name:    "Harbor View",
			Address: "1 Quay Street",
			City:    "Lisbon",
		},
		Room: booking.RoomDetails{
			ID:       uuid.New(),
			Name:     "Deluxe Double",
			RoomType: "double",
			Price:    500,
			Capacity: 2,
		},
		CheckIn:  "2025-03-10",
		CheckOut: "2025-03-12",
		Guests:   2,
		GuestInfo: []booking.GuestInfo{
			{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com", Phone: "555-0100"},
			{FirstName: "Rui", LastName: "Silva"},
		},
		TaxRateBps: 0,
		Payment: booking.PaymentInfo{
			PaymentID:      "pay_test",
			OrderID:        "ord_test",
			Method:         "card",
			CardBrand:      "visa",
			LastFourDigits: "4242",
			Amount:         1000,
			Status:         "completed",
			PaidAt:         FixedNow,
		},
		Status: booking.StatusConfirmed,
		Now:    FixedNow,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithoutUser() *BookingBuilder {
	b.UserID = nil
	return b
}

func (b *BookingBuilder) WithoutPayment() *BookingBuilder {
	b.Payment = booking.PaymentInfo{}
	return b
}

// BuildDomain goes through the checkout factory, so validation applies.
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	checkIn, err := booking.ParseDate(b.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := booking.ParseDate(b.CheckOut)
	if err != nil {
		return nil, err
	}
	pricing, err := booking.Quote(b.Room, checkIn, checkOut, b.TaxRateBps)
	if err != nil {
		return nil, err
	}
	return booking.New(booking.NewParams{
		Reference:    b.Reference,
		UserID:       b.UserID,
		HotelAdmin:   b.HotelAdmin,
		Hotel:        b.Hotel,
		Room:         b.Room,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Guests:       b.Guests,
		GuestInfo:    b.GuestInfo,
		Pricing:      pricing,
		Payment:      b.Payment,
		SpecialNotes: b.SpecialNotes,
	}, b.Now)
}

// BuildSnapshot produces a stored record in any status, bypassing checkout.
func (b *BookingBuilder) BuildSnapshot() booking.Snapshot {
	checkIn, _ := booking.ParseDate(b.CheckIn)
	checkOut, _ := booking.ParseDate(b.CheckOut)
	nights := booking.NightsBetween(checkIn, checkOut)
	total := b.Room.Price * int64(nights)
	taxes := (total*b.TaxRateBps + 5000) / 10000

	var payment *booking.PaymentInfo
	if b.Payment.PaymentID != "" {
		p := b.Payment
		payment = &p
	}
	return booking.Snapshot{
		ID:           b.ID,
		Reference:    b.Reference,
		UserID:       b.UserID,
		HotelAdmin:   b.HotelAdmin,
		Hotel:        b.Hotel,
		Room:         b.Room,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		Nights:       nights,
		Guests:       b.Guests,
		GuestInfo:    b.GuestInfo,
		TotalPrice:   total,
		TaxesAndFees: taxes,
		TotalAmount:  total + taxes,
		Status:       b.Status,
		RoomNumber:   b.RoomNumber,
		Payment:      payment,
		Refund:       b.Refund,
		SpecialNotes: b.SpecialNotes,
		CreatedAt:    b.Now,
		UpdatedAt:    b.Now,
	}
}

func (b *BookingBuilder) BuildReconstructed() *booking.Booking {
	return booking.Reconstruct(b.BuildSnapshot())
}
