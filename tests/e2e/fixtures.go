//go:build e2e

package e2e

import (
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"
	"time"

	resdto "hotel-booking-core/internal/handler/dto/response"
	"hotel-booking-core/tests/common/dbtest"
	"hotel-booking-core/tests/common/httptest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	CheckoutURL = "/api/checkout"
	BookingsURL = "/api/bookings"
	RefundsURL  = "/api/refund-requests"
)

// Listing is a seeded hotel with one room.
type Listing struct {
	AdminID uuid.UUID
	HotelID uuid.UUID
	RoomID  uuid.UUID
	Price   int64
}

func (s *SharedSuite) SeedListing(t *testing.T, price int64, capacity int) Listing {
	t.Helper()

	adminID := uuid.New()
	hotel := dbtest.CreateTestHotel(t, s.DB, adminID, "Harbor View")
	room := dbtest.CreateTestRoom(t, s.DB, hotel.ID, price, capacity)
	return Listing{AdminID: adminID, HotelID: hotel.ID, RoomID: room.ID, Price: price}
}

// CheckoutBody books two nights starting a month from now.
func CheckoutBody(l Listing, cardNumber string) map[string]any {
	checkIn := time.Now().UTC().AddDate(0, 1, 0)
	return map[string]any{
		"hotelId":  l.HotelID.String(),
		"roomId":   l.RoomID.String(),
		"checkIn":  checkIn.Format(time.DateOnly),
		"checkOut": checkIn.AddDate(0, 0, 2).Format(time.DateOnly),
		"guests":   2,
		"guestInfo": []map[string]any{
			{"firstName": "Ana", "lastName": "Silva", "email": "ana@example.com", "phone": "555-0100"},
		},
		"card": map[string]any{
			"number":         cardNumber,
			"expiryMonth":    12,
			"expiryYear":     time.Now().Year() + 2,
			"cvv":            "123",
			"cardholderName": "Ana Silva",
		},
	}
}

// Checkout books l through the API and returns the confirmed booking.
func (s *SharedSuite) Checkout(t *testing.T, l Listing, token string) resdto.BookingResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, CheckoutURL, CheckoutBody(l, "4242 4242 4242 4242"), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b resdto.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &b))
	return b
}

func (s *SharedSuite) ChangeStatus(t *testing.T, bookingID uuid.UUID, expected, next, token string) *stdhttptest.ResponseRecorder {
	t.Helper()

	body := map[string]any{"expectedStatus": expected, "status": next}
	return httptest.PerformRequest(t, s.Router, http.MethodPatch, BookingsURL+"/"+bookingID.String()+"/status", body, token)
}
