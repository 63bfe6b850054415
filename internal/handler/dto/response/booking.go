package response

import (
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type BookingResponse struct {
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

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{}
	_ = copier.Copy(res, v)
	if res.GuestInfo == nil {
		res.GuestInfo = []booking.GuestInfo{}
	}
	return res
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return FromBookingView(queries.NewBookingView(b))
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromBookingList(views []*queries.BookingView, next *queries.Cursor) *BookingListResponse {
	res := &BookingListResponse{
		Items: lo.Map(views, func(v *queries.BookingView, _ int) *BookingResponse {
			return FromBookingView(v)
		}),
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
