package request

import "hotel-booking-core/internal/pkg/errs"

var ErrInvalidID = errs.Mark(errs.New("invalid id format"), errs.ErrValidation)
