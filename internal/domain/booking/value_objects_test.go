//go:build unit

package booking_test

import (
	"testing"

	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) booking.Date {
	t.Helper()
	d, err := booking.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2025-03-10")
	assert.Equal(t, "2025-03-10", d.String())

	_, err := booking.ParseDate("10/03/2025")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 1, booking.NightsBetween(mustDate(t, "2025-03-10"), mustDate(t, "2025-03-11")))
	assert.Equal(t, 5, booking.NightsBetween(mustDate(t, "2025-02-26"), mustDate(t, "2025-03-03")))
}

func TestQuote(t *testing.T) {
	room := booking.RoomDetails{Price: 12345}

	p, err := booking.Quote(room, mustDate(t, "2025-03-10"), mustDate(t, "2025-03-13"), 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Nights)
	assert.Equal(t, int64(37035), p.TotalPrice.Minor())
	assert.Equal(t, int64(3704), p.TaxesAndFees.Minor())
	assert.Equal(t, p.TotalPrice.Minor()+p.TaxesAndFees.Minor(), p.TotalAmount.Minor())

	_, err = booking.Quote(room, mustDate(t, "2025-03-10"), mustDate(t, "2025-03-10"), 1000)
	assert.ErrorIs(t, err, booking.ErrInvalidStayDates)

	_, err = booking.Quote(booking.RoomDetails{}, mustDate(t, "2025-03-10"), mustDate(t, "2025-03-11"), 1000)
	assert.ErrorIs(t, err, booking.ErrInvalidRoomPrice)
}

func TestNewMoneyRejectsNegative(t *testing.T) {
	_, err := booking.NewMoney(-1)
	assert.True(t, errs.Is(err, errs.ErrValidation))
}
