//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	resdto "hotel-booking-core/internal/handler/dto/response"
	"hotel-booking-core/internal/infra/payment"
	"hotel-booking-core/tests/common/builder"
	"hotel-booking-core/tests/common/dbtest"
	"hotel-booking-core/tests/common/httptest"
	"hotel-booking-core/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// =============================================================================
// TestCheckout
// =============================================================================

func (s *BookingSuite) TestCheckout() {
	s.Run("Normal case: guest checkout creates a confirmed, paid booking", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		guestID := uuid.New()
		token := s.JWT.GenerateToken(t, guestID, actor.RoleUser)

		created := s.Checkout(t, listing, token)

		expected := &resdto.BookingResponse{
			UserID:       &guestID,
			HotelAdmin:   listing.AdminID,
			Nights:       2,
			Guests:       2,
			UnitPrice:    500,
			TotalPrice:   1000,
			TaxesAndFees: 100,
			TotalAmount:  1100,
			Status:       "confirmed",
			StatusLabel:  "Confirmed",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.BookingResponse{},
				"ID", "Reference", "Hotel", "Room", "CheckIn", "CheckOut", "GuestInfo", "Payment", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("booking mismatch (-want +got):\n%s", diff)
		}
		require.NotEmpty(t, created.Reference)
		require.NotNil(t, created.Payment)
		require.Equal(t, "4242", created.Payment.LastFourDigits)
		require.Equal(t, int64(1100), created.Payment.Amount)
		require.Equal(t, "completed", created.Payment.Status)
		require.Equal(t, "confirmed", dbtest.BookingStatus(t, s.DB, created.ID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"/"+created.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
	})

	s.Run("Normal case: anonymous checkout stores no user", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)

		created := s.Checkout(t, listing, "")

		require.Nil(t, created.UserID)
		require.Equal(t, "confirmed", created.Status)
	})

	s.Run("Error case: declined card creates nothing", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.CheckoutURL, e2e.CheckoutBody(listing, payment.DeclinedCardNumber), "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "payment declined")

		var count int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&count))
		require.Zero(t, count)
	})

	s.Run("Error case: unknown room is 404", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		listing.RoomID = uuid.New()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.CheckoutURL, e2e.CheckoutBody(listing, "4242 4242 4242 4242"), "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "room not found")
	})

	s.Run("Error case: more guests than the room holds", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, e2e.CheckoutURL, e2e.CheckoutBody(listing, "4242 4242 4242 4242"), "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "capacity")
	})
}

// =============================================================================
// TestStatusLifecycle
// =============================================================================

func (s *BookingSuite) TestStatusLifecycle() {
	s.Run("Normal case: guest cancels, stale completion is rejected", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		guestID := uuid.New()
		guestToken := s.JWT.GenerateToken(t, guestID, actor.RoleUser)
		adminToken := s.JWT.GenerateToken(t, listing.AdminID, actor.RoleHotel)
		created := s.Checkout(t, listing, guestToken)

		w := s.ChangeStatus(t, created.ID, "confirmed", "cancelled", guestToken)
		var cancelled resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Status)

		w = s.ChangeStatus(t, created.ID, "confirmed", "completed", adminToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "does not match")
		require.Equal(t, "cancelled", dbtest.BookingStatus(t, s.DB, created.ID))
	})

	s.Run("Normal case: hotel admin completes, then reactivates after cancel", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		adminToken := s.JWT.GenerateToken(t, listing.AdminID, actor.RoleHotel)
		created := s.Checkout(t, listing, "")

		steps := []struct{ from, to string }{
			{"confirmed", "completed"},
			{"completed", "cancelled"},
			{"cancelled", "confirmed"},
		}
		for _, step := range steps {
			w := s.ChangeStatus(t, created.ID, step.from, step.to, adminToken)
			require.Equal(t, http.StatusOK, w.Code, "%s -> %s: %s", step.from, step.to, w.Body.String())
		}
		require.Equal(t, "confirmed", dbtest.BookingStatus(t, s.DB, created.ID))
	})

	s.Run("Normal case: cancelling twice is a no-op", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		guestID := uuid.New()
		token := s.JWT.GenerateToken(t, guestID, actor.RoleUser)
		created := s.Checkout(t, listing, token)

		require.Equal(t, http.StatusOK, s.ChangeStatus(t, created.ID, "confirmed", "cancelled", token).Code)
		w := s.ChangeStatus(t, created.ID, "cancelled", "cancelled", token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: ownership and edges are enforced", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		guestID := uuid.New()
		guestToken := s.JWT.GenerateToken(t, guestID, actor.RoleUser)
		otherAdmin := s.JWT.GenerateToken(t, uuid.New(), actor.RoleHotel)
		adminToken := s.JWT.GenerateToken(t, listing.AdminID, actor.RoleHotel)
		created := s.Checkout(t, listing, guestToken)

		cases := []struct {
			name     string
			from, to string
			token    string
			status   int
		}{
			{"guest cannot confirm", "confirmed", "completed", guestToken, http.StatusForbidden},
			{"other hotel cannot cancel", "confirmed", "cancelled", otherAdmin, http.StatusForbidden},
			{"confirmed cannot go back to pending", "confirmed", "pending", adminToken, http.StatusConflict},
			{"unknown target", "confirmed", "archived", adminToken, http.StatusConflict},
		}
		for _, tc := range cases {
			w := s.ChangeStatus(t, created.ID, tc.from, tc.to, tc.token)
			require.Equal(t, tc.status, w.Code, "%s: %s", tc.name, w.Body.String())
		}
		require.Equal(t, "confirmed", dbtest.BookingStatus(t, s.DB, created.ID))

		w := s.ChangeStatus(t, created.ID, "confirmed", "cancelled", "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Concurrent case: only one of two racing transitions wins", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		adminToken := s.JWT.GenerateToken(t, listing.AdminID, actor.RoleHotel)
		created := s.Checkout(t, listing, "")

		var wg sync.WaitGroup
		codes := make([]int, 2)
		for i, next := range []string{"completed", "cancelled"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = s.ChangeStatus(t, created.ID, "confirmed", next, adminToken).Code
			}()
		}
		wg.Wait()

		require.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)
	})
}

// =============================================================================
// TestRoomNumber
// =============================================================================

func (s *BookingSuite) TestRoomNumber() {
	s.Run("Normal case: hotel admin assigns a room", func() {
		t := s.T()
		listing := s.SeedListing(t, 500, 2)
		adminToken := s.JWT.GenerateToken(t, listing.AdminID, actor.RoleAdmin)
		created := s.Checkout(t, listing, "")

		url := e2e.BookingsURL + "/" + created.ID.String() + "/room-number"
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, map[string]any{"roomNumber": "204"}, adminToken)

		var updated resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Equal(t, "204", updated.RoomNumber)

		// the read path must not serve the cached pre-assignment copy
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"/"+created.ID.String(), nil, adminToken)
		var fetched resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &fetched)
		require.Equal(t, "204", fetched.RoomNumber)
	})
}

// =============================================================================
// TestListBookings
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	s.Run("Normal case: hotel staff page through their own bookings", func() {
		t := s.T()
		adminID := uuid.New()
		otherAdmin := uuid.New()
		for i := range 3 {
			dbtest.CreateTestBooking(t, s.DB, builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.HotelAdmin = adminID
				b.Reference = fmt.Sprintf("BKLIST%02d", i+1)
				b.Now = builder.FixedNow.Add(time.Duration(i) * time.Minute)
			}).BuildSnapshot())
		}
		dbtest.CreateTestBooking(t, s.DB, builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.HotelAdmin = otherAdmin
			b.Reference = "BKOTHER1"
		}).BuildSnapshot())
		token := s.JWT.GenerateToken(t, adminID, actor.RoleHotel)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"?limit=2", nil, token)
		var page1 resdto.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page1)
		require.Len(t, page1.Items, 2)
		require.Equal(t, "BKLIST03", page1.Items[0].Reference)
		require.NotEmpty(t, page1.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"?limit=2&after="+page1.NextCursor, nil, token)
		var page2 resdto.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page2)
		require.Len(t, page2.Items, 1)
		require.Equal(t, "BKLIST01", page2.Items[0].Reference)
		require.Empty(t, page2.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"?hotel_admin="+otherAdmin.String(), nil, token)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Normal case: super-admin filters by status", func() {
		t := s.T()
		dbtest.CreateTestBooking(t, s.DB, builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Reference = "BKCANC01"
		}).WithStatus(booking.StatusCancelled).BuildSnapshot())
		dbtest.CreateTestBooking(t, s.DB, builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.Reference = "BKCONF01"
		}).BuildSnapshot())
		token := s.JWT.GenerateToken(t, uuid.New(), actor.RoleSuperAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, e2e.BookingsURL+"?status=cancelled", nil, token)
		var page resdto.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 1)
		require.Equal(t, "BKCANC01", page.Items[0].Reference)
	})
}
