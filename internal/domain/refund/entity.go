package refund

import (
	"strings"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"

	"github.com/google/uuid"
)

type Request struct {
	id               uuid.UUID
	bookingID        uuid.UUID
	bookingReference string
	amount           booking.Money
	reason           string
	description      string
	contactPhone     string
	method           Method
	status           Status
	requestedAt      time.Time
	requestedBy      uuid.UUID
	adminNotes       string
	processedAt      *time.Time
	processedBy      *uuid.UUID
	refundID         string
	updatedAt        time.Time
}

type NewInput struct {
	Reason                string
	Description           string
	ContactPhone          string
	PreferredRefundMethod string
	TotalAmount           int64
}

// NewRequest opens a refund request for a cancelled, paid booking on
// behalf of its guest. Duplicate detection needs the store and is left
// to the caller.
func NewRequest(b *booking.Booking, a actor.Actor, in NewInput, now time.Time) (*Request, error) {
	if !a.IsPtr(b.UserID()) {
		return nil, ErrNotBookingGuest
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, ErrMissingReason
	}
	phone := strings.TrimSpace(in.ContactPhone)
	if phone == "" {
		return nil, ErrMissingContactPhone
	}
	method, err := ParseMethod(in.PreferredRefundMethod)
	if err != nil {
		return nil, err
	}
	amount, err := validateAmount(in.TotalAmount, b)
	if err != nil {
		return nil, err
	}
	if err := checkRefundable(b); err != nil {
		return nil, err
	}

	return &Request{
		id:               uuid.New(),
		bookingID:        b.ID(),
		bookingReference: b.Reference(),
		amount:           amount,
		reason:           reason,
		description:      strings.TrimSpace(in.Description),
		contactPhone:     phone,
		method:           method,
		status:           StatusPending,
		requestedAt:      now,
		requestedBy:      a.ID,
		updatedAt:        now,
	}, nil
}

func validateAmount(minor int64, b *booking.Booking) (booking.Money, error) {
	if minor <= 0 {
		return booking.Money{}, ErrInvalidAmount
	}
	amount, err := booking.NewMoney(minor)
	if err != nil {
		return booking.Money{}, err
	}
	if amount.GreaterThan(b.TotalAmount()) {
		return booking.Money{}, ErrAmountExceedsTotal
	}
	return amount, nil
}

func checkRefundable(b *booking.Booking) error {
	if b.Status() != booking.StatusCancelled {
		return ErrBookingNotCancelled
	}
	if !b.Payment().HasPaymentID() {
		return ErrBookingNotPaid
	}
	if b.Refund() != nil {
		return ErrAlreadyRefunded
	}
	return nil
}

// Resolve records a super-admin decision on a pending request.
func (r *Request) Resolve(a actor.Actor, d Decision, adminNotes string, now time.Time) error {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return err
	}
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = d.Status()
	r.adminNotes = strings.TrimSpace(adminNotes)
	r.stamp(a, now)
	return nil
}

type ProcessInput struct {
	RefundAmount int64
	RefundReason string
}

// Settle builds the refund record to write onto the parent booking.
// The booking is not modified here; the caller applies the result and
// then calls MarkProcessed, both inside one transaction. recorded is true
// when the booking already carries this request's refund, in which case
// only MarkProcessed remains to be done.
func (r *Request) Settle(a actor.Actor, b *booking.Booking, in ProcessInput, refundID string, now time.Time) (info booking.RefundInfo, recorded bool, err error) {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return booking.RefundInfo{}, false, err
	}
	if r.status != StatusApproved {
		return booking.RefundInfo{}, false, ErrNotApproved
	}
	if b.HasRefundFor(r.id) {
		return *b.Refund(), true, nil
	}
	if b.Refund() != nil {
		return booking.RefundInfo{}, false, ErrRefundOwnedByOther
	}
	reason := strings.TrimSpace(in.RefundReason)
	if reason == "" {
		return booking.RefundInfo{}, false, ErrMissingReason
	}
	amount, err := validateAmount(in.RefundAmount, b)
	if err != nil {
		return booking.RefundInfo{}, false, err
	}
	if !b.Payment().HasPaymentID() {
		return booking.RefundInfo{}, false, ErrBookingNotPaid
	}

	return booking.RefundInfo{
		RefundID:        refundID,
		RefundRequestID: r.id,
		RefundAmount:    amount.Minor(),
		RefundStatus:    booking.RefundStatusProcessed,
		RefundReason:    reason,
		RefundedAt:      now,
		RefundedBy:      a.ID,
	}, false, nil
}

// MarkProcessed advances an approved request whose refund is already
// recorded on the booking.
func (r *Request) MarkProcessed(a actor.Actor, b *booking.Booking, now time.Time) error {
	if err := actor.RequireSuperAdmin(a); err != nil {
		return err
	}
	if r.status != StatusApproved {
		return ErrNotApproved
	}
	if b.Refund() == nil {
		return ErrRefundNotRecorded
	}
	if !b.HasRefundFor(r.id) {
		return ErrRefundOwnedByOther
	}
	r.status = StatusProcessed
	r.refundID = b.Refund().RefundID
	r.stamp(a, now)
	return nil
}

// IsUnconfirmed reports the processed-but-unconfirmed repair state: the
// booking carries this request's refund while the request is still approved.
func (r *Request) IsUnconfirmed(b *booking.Booking) bool {
	return r.status == StatusApproved && b.HasRefundFor(r.id)
}

func (r *Request) stamp(a actor.Actor, now time.Time) {
	id := a.ID
	at := now
	r.processedBy = &id
	r.processedAt = &at
	r.updatedAt = now
}

// Snapshot is the persisted form of a Request.
type Snapshot struct {
	ID                    uuid.UUID
	BookingID             uuid.UUID
	BookingReference      string
	TotalAmount           int64
	Reason                string
	Description           string
	ContactPhone          string
	PreferredRefundMethod Method
	Status                Status
	RequestedAt           time.Time
	RequestedBy           uuid.UUID
	AdminNotes            string
	ProcessedAt           *time.Time
	ProcessedBy           *uuid.UUID
	RefundID              string
	UpdatedAt             time.Time
}

func Reconstruct(s Snapshot) *Request {
	return &Request{
		id:               s.ID,
		bookingID:        s.BookingID,
		bookingReference: s.BookingReference,
		amount:           mustMoney(s.TotalAmount),
		reason:           s.Reason,
		description:      s.Description,
		contactPhone:     s.ContactPhone,
		method:           s.PreferredRefundMethod,
		status:           s.Status,
		requestedAt:      s.RequestedAt,
		requestedBy:      s.RequestedBy,
		adminNotes:       s.AdminNotes,
		processedAt:      s.ProcessedAt,
		processedBy:      s.ProcessedBy,
		refundID:         s.RefundID,
		updatedAt:        s.UpdatedAt,
	}
}

func mustMoney(minor int64) booking.Money {
	m, err := booking.NewMoney(minor)
	if err != nil {
		return booking.Money{}
	}
	return m
}

func (r *Request) Snapshot() Snapshot {
	return Snapshot{
		ID:                    r.id,
		BookingID:             r.bookingID,
		BookingReference:      r.bookingReference,
		TotalAmount:           r.amount.Minor(),
		Reason:                r.reason,
		Description:           r.description,
		ContactPhone:          r.contactPhone,
		PreferredRefundMethod: r.method,
		Status:                r.status,
		RequestedAt:           r.requestedAt,
		RequestedBy:           r.requestedBy,
		AdminNotes:            r.adminNotes,
		ProcessedAt:           r.processedAt,
		ProcessedBy:           r.processedBy,
		RefundID:              r.refundID,
		UpdatedAt:             r.updatedAt,
	}
}

func (r *Request) ID() uuid.UUID              { return r.id }
func (r *Request) BookingID() uuid.UUID       { return r.bookingID }
func (r *Request) BookingReference() string   { return r.bookingReference }
func (r *Request) TotalAmount() booking.Money { return r.amount }
func (r *Request) Reason() string             { return r.reason }
func (r *Request) Description() string        { return r.description }
func (r *Request) ContactPhone() string       { return r.contactPhone }
func (r *Request) Method() Method             { return r.method }
func (r *Request) Status() Status             { return r.status }
func (r *Request) RequestedAt() time.Time     { return r.requestedAt }
func (r *Request) RequestedBy() uuid.UUID     { return r.requestedBy }
func (r *Request) AdminNotes() string         { return r.adminNotes }
func (r *Request) ProcessedAt() *time.Time    { return r.processedAt }
func (r *Request) ProcessedBy() *uuid.UUID    { return r.processedBy }
func (r *Request) RefundID() string           { return r.refundID }
func (r *Request) UpdatedAt() time.Time       { return r.updatedAt }
