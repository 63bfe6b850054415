package request

import (
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type GuestRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CardRequest struct {
	Number         string `json:"number" binding:"required"`
	ExpiryMonth    int    `json:"expiryMonth" binding:"required"`
	ExpiryYear     int    `json:"expiryYear" binding:"required"`
	CVV            string `json:"cvv" binding:"required"`
	CardholderName string `json:"cardholderName" binding:"required"`
}

type CheckoutRequest struct {
	HotelID      uuid.UUID      `json:"hotelId" binding:"required"`
	RoomID       uuid.UUID      `json:"roomId" binding:"required"`
	CheckIn      string         `json:"checkIn" binding:"required"`
	CheckOut     string         `json:"checkOut" binding:"required"`
	Guests       int            `json:"guests"`
	GuestInfo    []GuestRequest `json:"guestInfo"`
	SpecialNotes string         `json:"specialNotes"`
	Card         CardRequest    `json:"card" binding:"required"`
}

func (r *CheckoutRequest) ToInput() (commands.CheckoutInput, error) {
	var card commands.CardInput
	if err := copier.Copy(&card, &r.Card); err != nil {
		return commands.CheckoutInput{}, err
	}
	guests := lo.Map(r.GuestInfo, func(g GuestRequest, _ int) booking.GuestInfo {
		return booking.GuestInfo{FirstName: g.FirstName, LastName: g.LastName, Email: g.Email, Phone: g.Phone}
	})
	return commands.CheckoutInput{
		HotelID:      r.HotelID,
		RoomID:       r.RoomID,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Guests:       r.Guests,
		GuestInfo:    guests,
		SpecialNotes: r.SpecialNotes,
		Card:         card,
	}, nil
}
