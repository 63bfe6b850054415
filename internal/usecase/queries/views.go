package queries

import (
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"

	"github.com/google/uuid"
)

// BookingView is the read model of a booking. It is also the cached form.
type BookingView struct {
	ID           uuid.UUID            `json:"id"`
	Reference    string               `json:"reference"`
	UserID       *uuid.UUID           `json:"userId,omitempty"`
	HotelAdmin   uuid.UUID            `json:"hotelAdmin"`
	Hotel        booking.HotelDetails `json:"hotelDetails"`
	Room         booking.RoomDetails  `json:"roomDetails"`
	CheckIn      string               `json:"checkIn"`
	CheckOut     string               `json:"checkOut"`
	Nights       int                  `json:"nights"`
	Guests       int                  `json:"guests"`
	GuestInfo    []booking.GuestInfo  `json:"guestInfo"`
	UnitPrice    int64                `json:"unitPrice"`
	TotalPrice   int64                `json:"totalPrice"`
	TaxesAndFees int64                `json:"taxesAndFees"`
	TotalAmount  int64                `json:"totalAmount"`
	Status       string               `json:"status"`
	StatusLabel  string               `json:"statusLabel"`
	RoomNumber   string               `json:"roomNumber,omitempty"`
	Payment      *booking.PaymentInfo `json:"paymentInfo,omitempty"`
	Refund       *booking.RefundInfo  `json:"refundInfo,omitempty"`
	SpecialNotes string               `json:"specialNotes,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func (v *BookingView) VisibleTo(viewerID uuid.UUID, superAdmin bool) bool {
	if superAdmin {
		return true
	}
	if viewerID == uuid.Nil {
		return false
	}
	return v.HotelAdmin == viewerID || (v.UserID != nil && *v.UserID == viewerID)
}

func NewBookingView(b *booking.Booking) *BookingView {
	s := b.Snapshot()
	pricing := b.Pricing()
	return &BookingView{
		ID:           s.ID,
		Reference:    s.Reference,
		UserID:       s.UserID,
		HotelAdmin:   s.HotelAdmin,
		Hotel:        s.Hotel,
		Room:         s.Room,
		CheckIn:      s.CheckIn.String(),
		CheckOut:     s.CheckOut.String(),
		Nights:       b.Nights(),
		Guests:       s.Guests,
		GuestInfo:    s.GuestInfo,
		UnitPrice:    pricing.UnitPrice.Minor(),
		TotalPrice:   s.TotalPrice,
		TaxesAndFees: s.TaxesAndFees,
		TotalAmount:  s.TotalAmount,
		Status:       s.Status.String(),
		StatusLabel:  s.Status.Label(),
		RoomNumber:   s.RoomNumber,
		Payment:      s.Payment,
		Refund:       s.Refund,
		SpecialNotes: s.SpecialNotes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// RefundView is the read model of a refund request. Unconfirmed marks an
// approved request whose refund is already recorded on the booking.
type RefundView struct {
	ID                    uuid.UUID  `json:"id"`
	BookingID             uuid.UUID  `json:"bookingId"`
	BookingReference      string     `json:"bookingReference"`
	TotalAmount           int64      `json:"totalAmount"`
	Reason                string     `json:"reason"`
	Description           string     `json:"description,omitempty"`
	ContactPhone          string     `json:"contactPhone"`
	PreferredRefundMethod string     `json:"preferredRefundMethod"`
	Status                string     `json:"status"`
	RequestedAt           time.Time  `json:"requestedAt"`
	RequestedBy           uuid.UUID  `json:"requestedBy"`
	AdminNotes            string     `json:"adminNotes,omitempty"`
	ProcessedAt           *time.Time `json:"processedAt,omitempty"`
	ProcessedBy           *uuid.UUID `json:"processedBy,omitempty"`
	RefundID              string     `json:"refundId,omitempty"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	Unconfirmed           bool       `json:"unconfirmed,omitempty"`
}

func NewRefundView(r *refund.Request) *RefundView {
	s := r.Snapshot()
	return &RefundView{
		ID:                    s.ID,
		BookingID:             s.BookingID,
		BookingReference:      s.BookingReference,
		TotalAmount:           s.TotalAmount,
		Reason:                s.Reason,
		Description:           s.Description,
		ContactPhone:          s.ContactPhone,
		PreferredRefundMethod: s.PreferredRefundMethod.String(),
		Status:                s.Status.String(),
		RequestedAt:           s.RequestedAt,
		RequestedBy:           s.RequestedBy,
		AdminNotes:            s.AdminNotes,
		ProcessedAt:           s.ProcessedAt,
		ProcessedBy:           s.ProcessedBy,
		RefundID:              s.RefundID,
		UpdatedAt:             s.UpdatedAt,
	}
}
