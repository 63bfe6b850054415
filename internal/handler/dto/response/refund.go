package response

import (
	"time"

	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
)

type RefundResponse struct {
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

func FromRefundView(v *queries.RefundView) *RefundResponse {
	res := &RefundResponse{}
	_ = copier.Copy(res, v)
	return res
}

func FromRefund(r *refund.Request) *RefundResponse {
	return FromRefundView(queries.NewRefundView(r))
}

func FromRefundList(views []*queries.RefundView) []*RefundResponse {
	return lo.Map(views, func(v *queries.RefundView, _ int) *RefundResponse {
		return FromRefundView(v)
	})
}

type ProcessRefundResponse struct {
	Booking       *BookingResponse `json:"booking"`
	RefundRequest *RefundResponse  `json:"refundRequest"`
}

func FromProcessResult(r *commands.ProcessResult) *ProcessRefundResponse {
	return &ProcessRefundResponse{
		Booking:       FromBooking(r.Booking),
		RefundRequest: FromRefund(r.Request),
	}
}
