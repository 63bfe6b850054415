package booking

import "hotel-booking-core/internal/pkg/errs"

var (
	ErrNotFound = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)

	ErrNotHotelAdmin   = errs.Mark(errs.New("actor is not the hotel admin of this booking"), errs.ErrForbidden)
	ErrNotBookingParty = errs.Mark(errs.New("actor is neither the hotel admin nor the guest of this booking"), errs.ErrForbidden)

	ErrUnknownStatus        = errs.Mark(errs.New("booking is in an unrecognized status"), errs.ErrInvalidStateTransition)
	ErrStaleStatus          = errs.Mark(errs.New("booking status does not match the expected status"), errs.ErrInvalidStateTransition)
	ErrTransitionNotAllowed = errs.Mark(errs.New("booking status transition is not allowed"), errs.ErrInvalidStateTransition)
	ErrBookingCancelled     = errs.Mark(errs.New("booking is cancelled"), errs.ErrInvalidStateTransition)
	ErrRefundAlreadyApplied = errs.Mark(errs.New("booking already carries a processed refund"), errs.ErrInvalidStateTransition)

	ErrNegativeAmount    = errs.Mark(errs.New("amount cannot be negative"), errs.ErrValidation)
	ErrInvalidStayDates  = errs.Mark(errs.New("check-out must be after check-in"), errs.ErrValidation)
	ErrCheckInInPast     = errs.Mark(errs.New("check-in date is in the past"), errs.ErrValidation)
	ErrInvalidGuestCount = errs.Mark(errs.New("guest count is outside the room capacity"), errs.ErrValidation)
	ErrMissingGuest      = errs.Mark(errs.New("primary guest name is required"), errs.ErrValidation)
	ErrInvalidRoomPrice  = errs.Mark(errs.New("room price must be positive"), errs.ErrValidation)
	ErrInvalidRoomNumber = errs.Mark(errs.New("room number is required"), errs.ErrValidation)
	ErrMissingPayment    = errs.Mark(errs.New("payment is required"), errs.ErrValidation)
	ErrMissingReference  = errs.Mark(errs.New("booking reference is required"), errs.ErrValidation)
)
