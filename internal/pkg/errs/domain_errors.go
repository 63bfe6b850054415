package errs

// Error taxonomy shared by the booking and refund engines.
// Concrete errors are attached to one of these with Mark.
var (
	ErrNotFound               = New("not found")
	ErrForbidden              = New("forbidden")
	ErrInvalidStateTransition = New("invalid state transition")
	ErrValidation             = New("validation error")
	ErrStoreUnavailable       = New("store unavailable")
)

// IsRetryable reports whether retrying the same call may succeed.
// Only transient store failures qualify.
func IsRetryable(err error) bool {
	return err != nil && Is(err, ErrStoreUnavailable)
}

// Kind returns the taxonomy name of err, or "internal" if it is unclassified.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrNotFound):
		return "not_found"
	case Is(err, ErrForbidden):
		return "forbidden"
	case Is(err, ErrInvalidStateTransition):
		return "invalid_state_transition"
	case Is(err, ErrValidation):
		return "validation"
	case Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}
