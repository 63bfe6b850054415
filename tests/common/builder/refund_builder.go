//go:build unit || e2e

package builder

import (
	"time"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/domain/refund"

	"github.com/google/uuid"
)

type RefundBuilder struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	Reference   string
	RequestedBy uuid.UUID
	Reason      string
	Description string
	Phone       string
	Method      string
	Amount      int64
	Status      refund.Status
	Now         time.Time
}

func NewRefundBuilder() *RefundBuilder {
	return &RefundBuilder{
		ID:          uuid.New(),
		BookingID:   uuid.New(),
		Reference:   "BK123456",
		RequestedBy: uuid.New(),
		Reason:      "plans changed",
		Phone:       "555-0100",
		Method:      string(refund.MethodOriginalPayment),
		Amount:      1000,
		Status:      refund.StatusPending,
		Now:         FixedNow,
	}
}

func (r *RefundBuilder) With(mutate func(*RefundBuilder)) *RefundBuilder {
	mutate(r)
	return r
}

// ForBooking points the request at a stored booking and its guest.
func (r *RefundBuilder) ForBooking(s booking.Snapshot) *RefundBuilder {
	r.BookingID = s.ID
	r.Reference = s.Reference
	if s.UserID != nil {
		r.RequestedBy = *s.UserID
	}
	return r
}

func (r *RefundBuilder) WithStatus(s refund.Status) *RefundBuilder {
	r.Status = s
	return r
}

func (r *RefundBuilder) BuildInput() refund.NewInput {
	return refund.NewInput{
		Reason:                r.Reason,
		Description:           r.Description,
		ContactPhone:          r.Phone,
		PreferredRefundMethod: r.Method,
		TotalAmount:           r.Amount,
	}
}

func (r *RefundBuilder) BuildSnapshot() refund.Snapshot {
	return refund.Snapshot{
		ID:                    r.ID,
		BookingID:             r.BookingID,
		BookingReference:      r.Reference,
		TotalAmount:           r.Amount,
		Reason:                r.Reason,
		Description:           r.Description,
		ContactPhone:          r.Phone,
		PreferredRefundMethod: refund.Method(r.Method),
		Status:                r.Status,
		RequestedAt:           r.Now,
		RequestedBy:           r.RequestedBy,
		UpdatedAt:             r.Now,
	}
}

func (r *RefundBuilder) BuildReconstructed() *refund.Request {
	return refund.Reconstruct(r.BuildSnapshot())
}
