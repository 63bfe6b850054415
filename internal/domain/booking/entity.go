package booking

import (
	"strings"
	"time"

	"hotel-booking-core/internal/domain/actor"

	"github.com/google/uuid"
)

const maxRoomNumberLength = 20

type Booking struct {
	id           uuid.UUID
	reference    string
	userID       *uuid.UUID
	hotelAdmin   uuid.UUID
	hotel        HotelDetails
	room         RoomDetails
	checkIn      Date
	checkOut     Date
	nights       int
	guests       int
	guestInfo    []GuestInfo
	pricing      Pricing
	status       Status
	roomNumber   string
	payment      *PaymentInfo
	refund       *RefundInfo
	specialNotes string
	createdAt    time.Time
	updatedAt    time.Time
}

type NewParams struct {
	Reference    string
	UserID       *uuid.UUID
	HotelAdmin   uuid.UUID
	Hotel        HotelDetails
	Room         RoomDetails
	CheckIn      Date
	CheckOut     Date
	Guests       int
	GuestInfo    []GuestInfo
	Pricing      Pricing
	Payment      PaymentInfo
	SpecialNotes string
}

// New creates a paid booking. Checkout only produces confirmed bookings.
func New(p NewParams, now time.Time) (*Booking, error) {
	if strings.TrimSpace(p.Reference) == "" {
		return nil, ErrMissingReference
	}
	if err := ValidateStay(p.CheckIn, p.CheckOut, DateOf(now)); err != nil {
		return nil, err
	}
	if err := ValidateGuests(p.Guests, p.Room, p.GuestInfo); err != nil {
		return nil, err
	}
	if !p.Payment.HasPaymentID() {
		return nil, ErrMissingPayment
	}
	payment := p.Payment

	return &Booking{
		id:           uuid.New(),
		reference:    p.Reference,
		userID:       p.UserID,
		hotelAdmin:   p.HotelAdmin,
		hotel:        p.Hotel,
		room:         p.Room,
		checkIn:      p.CheckIn,
		checkOut:     p.CheckOut,
		nights:       p.Pricing.Nights,
		guests:       p.Guests,
		guestInfo:    append([]GuestInfo(nil), p.GuestInfo...),
		pricing:      p.Pricing,
		status:       StatusConfirmed,
		payment:      &payment,
		specialNotes: strings.TrimSpace(p.SpecialNotes),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ValidateStay(checkIn, checkOut, today Date) error {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return ErrInvalidStayDates
	}
	if checkIn.Before(today) {
		return ErrCheckInInPast
	}
	return nil
}

func ValidateGuests(guests int, room RoomDetails, info []GuestInfo) error {
	if guests < 1 || (room.Capacity > 0 && guests > room.Capacity) {
		return ErrInvalidGuestCount
	}
	if len(info) == 0 || strings.TrimSpace(info[0].FirstName) == "" {
		return ErrMissingGuest
	}
	return nil
}

// Snapshot is the persisted form of a Booking.
type Snapshot struct {
	ID           uuid.UUID
	Reference    string
	UserID       *uuid.UUID
	HotelAdmin   uuid.UUID
	Hotel        HotelDetails
	Room         RoomDetails
	CheckIn      Date
	CheckOut     Date
	Nights       int
	Guests       int
	GuestInfo    []GuestInfo
	TotalPrice   int64
	TaxesAndFees int64
	TotalAmount  int64
	Status       Status
	RoomNumber   string
	Payment      *PaymentInfo
	Refund       *RefundInfo
	SpecialNotes string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reconstruct rebuilds a booking from storage without validation.
// Unknown statuses are preserved so they can be displayed but never transitioned.
func Reconstruct(s Snapshot) *Booking {
	nights := s.Nights
	if nights == 0 && s.CheckOut.After(s.CheckIn) {
		nights = NightsBetween(s.CheckIn, s.CheckOut)
	}
	b := &Booking{
		id:         s.ID,
		reference:  s.Reference,
		userID:     s.UserID,
		hotelAdmin: s.HotelAdmin,
		hotel:      s.Hotel,
		room:       s.Room,
		checkIn:    s.CheckIn,
		checkOut:   s.CheckOut,
		nights:     nights,
		guests:     s.Guests,
		guestInfo:  append([]GuestInfo(nil), s.GuestInfo...),
		pricing: Pricing{
			UnitPrice:    Money{minor: s.Room.Price},
			Nights:       nights,
			TotalPrice:   Money{minor: s.TotalPrice},
			TaxesAndFees: Money{minor: s.TaxesAndFees},
			TotalAmount:  Money{minor: s.TotalAmount},
		},
		status:       ParseStatus(string(s.Status)),
		roomNumber:   s.RoomNumber,
		specialNotes: s.SpecialNotes,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
	}
	if s.Payment != nil {
		p := *s.Payment
		b.payment = &p
	}
	if s.Refund != nil {
		r := *s.Refund
		b.refund = &r
	}
	return b
}

func (b *Booking) Snapshot() Snapshot {
	s := Snapshot{
		ID:           b.id,
		Reference:    b.reference,
		UserID:       b.userID,
		HotelAdmin:   b.hotelAdmin,
		Hotel:        b.hotel,
		Room:         b.room,
		CheckIn:      b.checkIn,
		CheckOut:     b.checkOut,
		Nights:       b.nights,
		Guests:       b.guests,
		GuestInfo:    append([]GuestInfo(nil), b.guestInfo...),
		TotalPrice:   b.pricing.TotalPrice.Minor(),
		TaxesAndFees: b.pricing.TaxesAndFees.Minor(),
		TotalAmount:  b.pricing.TotalAmount.Minor(),
		Status:       b.status,
		RoomNumber:   b.roomNumber,
		SpecialNotes: b.specialNotes,
		CreatedAt:    b.createdAt,
		UpdatedAt:    b.updatedAt,
	}
	if b.payment != nil {
		p := *b.payment
		s.Payment = &p
	}
	if b.refund != nil {
		r := *b.refund
		s.Refund = &r
	}
	return s
}

// ChangeStatus moves the booking from expected to next on behalf of a.
// Authorization is checked before state. Cancelling a booking that is
// already cancelled succeeds without change and reports changed=false.
func (b *Booking) ChangeStatus(a actor.Actor, expected, next Status, now time.Time) (changed bool, err error) {
	expected = ParseStatus(string(expected))
	next = ParseStatus(string(next))

	if err := b.authorizeTransition(a, next); err != nil {
		return false, err
	}
	if !b.status.IsKnown() {
		return false, ErrUnknownStatus
	}
	if next == StatusCancelled && b.status == StatusCancelled {
		return false, nil
	}
	if expected != b.status {
		return false, ErrStaleStatus
	}
	if !b.status.CanTransitionTo(next) {
		return false, ErrTransitionNotAllowed
	}

	b.status = next
	b.updatedAt = now
	return true, nil
}

func (b *Booking) authorizeTransition(a actor.Actor, next Status) error {
	if a.Is(b.hotelAdmin) {
		return nil
	}
	if next == StatusCancelled {
		if a.IsPtr(b.userID) {
			return nil
		}
		return ErrNotBookingParty
	}
	return ErrNotHotelAdmin
}

func (b *Booking) AssignRoomNumber(a actor.Actor, roomNumber string, now time.Time) error {
	if !a.Is(b.hotelAdmin) {
		return ErrNotHotelAdmin
	}
	roomNumber = strings.TrimSpace(roomNumber)
	if roomNumber == "" || len(roomNumber) > maxRoomNumberLength {
		return ErrInvalidRoomNumber
	}
	if !b.status.IsKnown() {
		return ErrUnknownStatus
	}
	if b.status == StatusCancelled {
		return ErrBookingCancelled
	}
	b.roomNumber = roomNumber
	b.updatedAt = now
	return nil
}

// ApplyRefund records a processed refund. A booking carries at most one.
func (b *Booking) ApplyRefund(info RefundInfo, now time.Time) error {
	if b.refund != nil {
		return ErrRefundAlreadyApplied
	}
	info.RefundStatus = RefundStatusProcessed
	b.refund = &info
	b.updatedAt = now
	return nil
}

// HasRefundFor reports whether the recorded refund originates from requestID.
func (b *Booking) HasRefundFor(requestID uuid.UUID) bool {
	return b.refund != nil && b.refund.RefundRequestID == requestID
}

func (b *Booking) IsOwnedByHotelAdmin(id uuid.UUID) bool {
	return b.hotelAdmin == id
}

// CanBeViewedBy: super-admin, the owning hotel admin, or the guest.
func (b *Booking) CanBeViewedBy(a actor.Actor) bool {
	return a.IsSuperAdmin() || a.Is(b.hotelAdmin) || a.IsPtr(b.userID)
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Reference() string     { return b.reference }
func (b *Booking) UserID() *uuid.UUID    { return b.userID }
func (b *Booking) HotelAdmin() uuid.UUID { return b.hotelAdmin }
func (b *Booking) Hotel() HotelDetails   { return b.hotel }
func (b *Booking) Room() RoomDetails     { return b.room }
func (b *Booking) CheckIn() Date         { return b.checkIn }
func (b *Booking) CheckOut() Date        { return b.checkOut }
func (b *Booking) Nights() int           { return b.nights }
func (b *Booking) Guests() int           { return b.guests }
func (b *Booking) Pricing() Pricing      { return b.pricing }
func (b *Booking) TotalAmount() Money    { return b.pricing.TotalAmount }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) RoomNumber() string    { return b.roomNumber }
func (b *Booking) Payment() *PaymentInfo { return b.payment }
func (b *Booking) Refund() *RefundInfo   { return b.refund }
func (b *Booking) SpecialNotes() string  { return b.specialNotes }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Booking) GuestInfo() []GuestInfo {
	return append([]GuestInfo(nil), b.guestInfo...)
}
