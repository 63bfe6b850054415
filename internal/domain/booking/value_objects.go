package booking

import (
	"math"
	"strings"
	"time"

	"hotel-booking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// Date is a calendar date with no timezone, stored as YYYY-MM-DD.
type Date struct {
	t time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errs.Mark(errs.Wrapf(err, "invalid date %q", s), errs.ErrValidation)
	}
	return Date{t: t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Time() time.Time    { return d.t }
func (d Date) IsZero() bool       { return d.t.IsZero() }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// NightsBetween is ceil((checkOut - checkIn) / 1 day).
func NightsBetween(checkIn, checkOut Date) int {
	hours := checkOut.t.Sub(checkIn.t).Hours()
	return int(math.Ceil(hours / 24))
}

// Money is an amount in minor currency units.
type Money struct {
	minor int64
}

func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{minor: minor}, nil
}

func (m Money) Minor() int64                 { return m.minor }
func (m Money) IsPositive() bool             { return m.minor > 0 }
func (m Money) Add(other Money) Money        { return Money{minor: m.minor + other.minor} }
func (m Money) Times(n int) Money            { return Money{minor: m.minor * int64(n)} }
func (m Money) GreaterThan(other Money) bool { return m.minor > other.minor }

// ApplyBps returns m * bps / 10000, rounded half up.
func (m Money) ApplyBps(bps int64) Money {
	return Money{minor: (m.minor*bps + 5000) / 10000}
}

type HotelDetails struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	City    string    `json:"city,omitempty"`
	Phone   string    `json:"phone,omitempty"`
}

type RoomDetails struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	RoomType string    `json:"roomType,omitempty"`
	Price    int64     `json:"price"`
	Capacity int       `json:"capacity,omitempty"`
}

// GuestInfo: the first element of a booking's guest list is the contracting guest.
type GuestInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PaymentInfo never carries the full card number.
type PaymentInfo struct {
	PaymentID      string    `json:"paymentId"`
	OrderID        string    `json:"orderId,omitempty"`
	Method         string    `json:"method"`
	CardBrand      string    `json:"cardBrand,omitempty"`
	LastFourDigits string    `json:"lastFourDigits,omitempty"`
	CardholderName string    `json:"cardholderName,omitempty"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	PaidAt         time.Time `json:"paidAt"`
}

func (p *PaymentInfo) HasPaymentID() bool {
	return p != nil && strings.TrimSpace(p.PaymentID) != ""
}

const RefundStatusProcessed = "processed"

type RefundInfo struct {
	RefundID        string    `json:"refundId"`
	RefundRequestID uuid.UUID `json:"refundRequestId"`
	RefundAmount    int64     `json:"refundAmount"`
	RefundStatus    string    `json:"refundStatus"`
	RefundReason    string    `json:"refundReason"`
	RefundedAt      time.Time `json:"refundedAt"`
	RefundedBy      uuid.UUID `json:"refundedBy"`
}

type Pricing struct {
	UnitPrice    Money
	Nights       int
	TotalPrice   Money
	TaxesAndFees Money
	TotalAmount  Money
}
