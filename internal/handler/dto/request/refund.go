package request

import (
	"hotel-booking-core/internal/domain/refund"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"
)

type CreateRefundRequest struct {
	Reason                string `json:"reason"`
	Description           string `json:"description"`
	ContactPhone          string `json:"contactPhone"`
	PreferredRefundMethod string `json:"preferredRefundMethod"`
	TotalAmount           int64  `json:"totalAmount"`
}

func (r *CreateRefundRequest) ToInput() refund.NewInput {
	return refund.NewInput{
		Reason:                r.Reason,
		Description:           r.Description,
		ContactPhone:          r.ContactPhone,
		PreferredRefundMethod: r.PreferredRefundMethod,
		TotalAmount:           r.TotalAmount,
	}
}

type ResolveRefundRequest struct {
	Decision   string `json:"decision" binding:"required"`
	AdminNotes string `json:"adminNotes"`
}

func (r *ResolveRefundRequest) ToInput() commands.ResolveInput {
	return commands.ResolveInput{Decision: r.Decision, AdminNotes: r.AdminNotes}
}

type ProcessRefundRequest struct {
	RefundAmount int64  `json:"refundAmount"`
	RefundReason string `json:"refundReason"`
}

func (r *ProcessRefundRequest) ToInput() refund.ProcessInput {
	return refund.ProcessInput{RefundAmount: r.RefundAmount, RefundReason: r.RefundReason}
}

type ListRefundsQuery struct {
	BookingID string `form:"booking_id"`
	Status    string `form:"status"`
	Order     string `form:"order"`
}

func (q *ListRefundsQuery) ToFilter() (queries.RefundFilter, error) {
	var f queries.RefundFilter

	order, err := queries.ParseSortOrder(q.Order)
	if err != nil {
		return f, err
	}
	f.Order = order

	if f.BookingID, err = parseOptionalUUID(q.BookingID); err != nil {
		return f, err
	}
	if q.Status != "" {
		status, err := refund.ParseStatus(q.Status)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	return f, nil
}
