//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"hotel-booking-core/internal/domain/actor"
	"hotel-booking-core/internal/domain/booking"
	"hotel-booking-core/internal/handler/api"
	resdto "hotel-booking-core/internal/handler/dto/response"
	"hotel-booking-core/internal/pkg/errs"
	"hotel-booking-core/internal/usecase/commands"
	"hotel-booking-core/internal/usecase/queries"
	"hotel-booking-core/tests/common/builder"
	"hotel-booking-core/tests/common/httptest"
	"hotel-booking-core/tests/common/testutil"
	commandsmock "hotel-booking-core/tests/mock/commands"
	queriesmock "hotel-booking-core/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeAuth stands in for the JWT middleware: any bearer token
// authenticates as the actor the test selected.
func fakeAuth(current *actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", *current)
		c.Next()
	}
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actor        actor.Actor
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.actor = actor.New(uuid.New(), actor.RoleHotel)

	auth := fakeAuth(&s.actor)
	s.router.GET("/bookings", auth, s.handler.List)
	s.router.GET("/bookings/:id", auth, s.handler.Get)
	s.router.PATCH("/bookings/:id/status", auth, s.handler.UpdateStatus)
	s.router.PUT("/bookings/:id/room-number", auth, s.handler.AssignRoomNumber)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	b := builder.NewBookingBuilder().BuildReconstructed()
	url := "/bookings/" + b.ID().String()

	s.Run("success: returns the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID(), s.actor).
			Return(queries.NewBookingView(b), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID(), body.ID)
		s.Equal("BK123456", body.Reference)
		s.Equal("confirmed", body.Status)
		s.Equal("Confirmed", body.StatusLabel)
		s.Equal(int64(1000), body.TotalAmount)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Content-Type": "application/json; charset=utf-8"})
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps query errors to statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"not found", queries.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
			{"forbidden", queries.ErrBookingAccess, http.StatusForbidden, "booking access denied"},
			{"store unavailable", errs.Mark(errs.New("pool exhausted"), errs.ErrStoreUnavailable), http.StatusServiceUnavailable, "temporarily unavailable"},
			{"unclassified", errs.New("boom"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetByID(gomock.Any(), b.ID(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	first := builder.NewBookingBuilder().BuildReconstructed()
	second := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.Reference = "BK654321" }).BuildReconstructed()
	views := []*queries.BookingView{queries.NewBookingView(first), queries.NewBookingView(second)}

	s.Run("success: passes filter, cursor and limit through", func() {
		adminID := uuid.New()
		status := "confirmed"
		expectedFilter := queries.BookingFilter{HotelAdmin: &adminID, Status: &status, Order: queries.OrderOldestFirst}
		s.mockQueries.EXPECT().
			List(gomock.Any(), expectedFilter, s.actor, &queries.Cursor{After: "abc"}, 2).
			Return(views, &queries.Cursor{After: "next"}, nil).Times(1)

		url := "/bookings?hotel_admin=" + adminID.String() + "&status=confirmed&order=asc&limit=2&after=abc"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Equal("BK654321", body.Items[1].Reference)
		s.Equal("next", body.NextCursor)
	})

	s.Run("success: last page has no cursor", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), nil, 0).
			Return(views[:1], nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotContains(body, "nextCursor")
	})

	s.Run("error: rejects bad query parameters", func() {
		testCases := []struct {
			name           string
			query          string
			expectedStatus int
		}{
			{"non-numeric limit", "?limit=ten", http.StatusBadRequest},
			{"malformed hotel_admin", "?hotel_admin=nope", http.StatusUnprocessableEntity},
			{"malformed user_id", "?user_id=nope", http.StatusUnprocessableEntity},
			{"unknown order", "?order=sideways", http.StatusUnprocessableEntity},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings"+tc.query, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 403 when scoping to another hotel", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrBookingAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?hotel_admin="+uuid.NewString(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "access denied")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/status"
	reqBody := map[string]any{"expectedStatus": "pending", "status": "confirmed"}

	s.Run("success: returns the updated booking", func() {
		updated := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) { b.ID = id }).BuildReconstructed()
		expectedInput := commands.UpdateStatusInput{BookingID: id, Expected: "pending", Next: "confirmed"}
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), expectedInput, s.actor).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 400 on missing fields", func() {
		for _, field := range []string{"expectedStatus", "status"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps command errors to statuses", func() {
		testCases := []struct {
			name           string
			err            error
			expectedStatus int
			expectedMsg    string
		}{
			{"stale expected status", booking.ErrStaleStatus, http.StatusConflict, "does not match"},
			{"edge not allowed", booking.ErrTransitionNotAllowed, http.StatusConflict, "not allowed"},
			{"not the hotel admin", booking.ErrNotHotelAdmin, http.StatusForbidden, "not the hotel admin"},
			{"missing booking", booking.ErrNotFound, http.StatusNotFound, "booking not found"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: store outage is flagged retryable", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("timeout"), errs.ErrStoreUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		s.Equal(http.StatusServiceUnavailable, rec.Code)
		var body map[string]map[string]any
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Equal("store_unavailable", body["error"]["code"])
		s.Equal(true, body["error"]["retryable"])
	})
}

// ================================================================================
// TestAssignRoomNumber
// ================================================================================

func (s *BookingHandlerTestSuite) TestAssignRoomNumber() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/room-number"

	s.Run("success: returns the booking with its room", func() {
		updated := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ID = id
			b.RoomNumber = "204"
		}).BuildReconstructed()
		s.mockCommands.EXPECT().AssignRoomNumber(gomock.Any(), id, "204", s.actor).
			Return(updated, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"roomNumber": "204"}, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("204", body.RoomNumber)
	})

	s.Run("error: 400 without roomNumber", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 on a cancelled booking", func() {
		s.mockCommands.EXPECT().AssignRoomNumber(gomock.Any(), id, "204", gomock.Any()).
			Return(nil, booking.ErrBookingCancelled).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"roomNumber": "204"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "booking is cancelled")
	})
}
