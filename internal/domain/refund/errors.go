package refund

import "hotel-booking-core/internal/pkg/errs"

var (
	ErrNotFound = errs.Mark(errs.New("refund request not found"), errs.ErrNotFound)

	ErrNotBookingGuest = errs.Mark(errs.New("only the booking's guest may request a refund"), errs.ErrForbidden)

	ErrMissingReason       = errs.Mark(errs.New("refund reason is required"), errs.ErrValidation)
	ErrMissingContactPhone = errs.Mark(errs.New("contact phone is required"), errs.ErrValidation)
	ErrInvalidMethod       = errs.Mark(errs.New("unsupported refund method"), errs.ErrValidation)
	ErrInvalidDecision     = errs.Mark(errs.New("decision must be approved or rejected"), errs.ErrValidation)
	ErrInvalidStatus       = errs.Mark(errs.New("unknown refund request status"), errs.ErrValidation)
	ErrInvalidAmount       = errs.Mark(errs.New("refund amount must be positive"), errs.ErrValidation)
	ErrAmountExceedsTotal  = errs.Mark(errs.New("refund amount exceeds the booking total"), errs.ErrValidation)
	ErrBookingNotCancelled = errs.Mark(errs.New("refunds can only be requested for cancelled bookings"), errs.ErrValidation)
	ErrBookingNotPaid      = errs.Mark(errs.New("booking has no captured payment to refund"), errs.ErrValidation)
	ErrAlreadyRequested    = errs.Mark(errs.New("booking already has an open refund request"), errs.ErrValidation)
	ErrAlreadyRefunded     = errs.Mark(errs.New("booking has already been refunded"), errs.ErrValidation)

	ErrNotPending         = errs.Mark(errs.New("refund request is no longer pending"), errs.ErrInvalidStateTransition)
	ErrNotApproved        = errs.Mark(errs.New("refund request is not approved"), errs.ErrInvalidStateTransition)
	ErrRefundOwnedByOther = errs.Mark(errs.New("booking refund belongs to another request"), errs.ErrInvalidStateTransition)
	ErrRefundNotRecorded  = errs.Mark(errs.New("booking carries no refund for this request"), errs.ErrInvalidStateTransition)
)
