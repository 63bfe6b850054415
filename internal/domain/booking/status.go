package booking

import "strings"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions lists every legal lifecycle edge. Cancelling an already
// cancelled booking is handled as a no-op before this table is consulted.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {StatusCancelled},
	StatusCancelled: {StatusConfirmed},
}

// ParseStatus normalizes a stored or requested value. Values outside the
// closed set are kept verbatim (lower-cased) so they can still be displayed.
func ParseStatus(s string) Status {
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsKnown() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Equal(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[ParseStatus(string(s))] {
		if allowed == ParseStatus(string(next)) {
			return true
		}
	}
	return false
}

// Label is the display form; legacy values show as "Unknown".
func (s Status) Label() string {
	switch ParseStatus(string(s)) {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func KnownStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}
