//go:build unit

package booking_test

import (
	"testing"

	"hotel-booking-core/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	all := append(booking.KnownStatuses(), booking.Status("refunded"))
	allowed := map[[2]booking.Status]bool{
		{booking.StatusPending, booking.StatusConfirmed}:   true,
		{booking.StatusPending, booking.StatusCancelled}:   true,
		{booking.StatusConfirmed, booking.StatusCompleted}: true,
		{booking.StatusConfirmed, booking.StatusCancelled}: true,
		{booking.StatusCompleted, booking.StatusCancelled}: true,
		{booking.StatusCancelled, booking.StatusConfirmed}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]booking.Status{from, to}]
			assert.Equalf(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	assert.Equal(t, booking.StatusConfirmed, booking.ParseStatus(" Confirmed "))
	assert.True(t, booking.ParseStatus("CANCELLED").IsKnown())
	assert.False(t, booking.ParseStatus("checked_in").IsKnown())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", booking.StatusPending.Label())
	assert.Equal(t, "Cancelled", booking.Status("CANCELLED").Label())
	assert.Equal(t, "Unknown", booking.Status("checked_in").Label())
}
